package jsast

import "encoding/json"

// Every node serializes with a leading "type" discriminator, as in the Shift
// JSON format.

// MarshalJSON implements json.Marshaler.
func (n *LiteralBooleanExpression) MarshalJSON() ([]byte, error) {
	type Alias LiteralBooleanExpression
	return json.Marshal(struct {
		Type string `json:"type"`
		*Alias
	}{n.Type(), (*Alias)(n)})
}

// MarshalJSON implements json.Marshaler.
func (n *LiteralNumericExpression) MarshalJSON() ([]byte, error) {
	type Alias LiteralNumericExpression
	return json.Marshal(struct {
		Type string `json:"type"`
		*Alias
	}{n.Type(), (*Alias)(n)})
}

// MarshalJSON implements json.Marshaler.
func (n *IdentifierExpression) MarshalJSON() ([]byte, error) {
	type Alias IdentifierExpression
	return json.Marshal(struct {
		Type string `json:"type"`
		*Alias
	}{n.Type(), (*Alias)(n)})
}

// MarshalJSON implements json.Marshaler.
func (n *BinaryExpression) MarshalJSON() ([]byte, error) {
	type Alias BinaryExpression
	return json.Marshal(struct {
		Type string `json:"type"`
		*Alias
	}{n.Type(), (*Alias)(n)})
}

// MarshalJSON implements json.Marshaler.
func (n *FunctionExpression) MarshalJSON() ([]byte, error) {
	type Alias FunctionExpression
	return json.Marshal(struct {
		Type string `json:"type"`
		*Alias
	}{n.Type(), (*Alias)(n)})
}

// MarshalJSON implements json.Marshaler.
func (n *BindingIdentifier) MarshalJSON() ([]byte, error) {
	type Alias BindingIdentifier
	return json.Marshal(struct {
		Type string `json:"type"`
		*Alias
	}{n.Type(), (*Alias)(n)})
}

// MarshalJSON implements json.Marshaler.
func (n *FormalParameters) MarshalJSON() ([]byte, error) {
	type Alias FormalParameters
	return json.Marshal(struct {
		Type string `json:"type"`
		*Alias
	}{n.Type(), (*Alias)(n)})
}

// MarshalJSON implements json.Marshaler.
func (n *FunctionBody) MarshalJSON() ([]byte, error) {
	type Alias FunctionBody
	return json.Marshal(struct {
		Type string `json:"type"`
		*Alias
	}{n.Type(), (*Alias)(n)})
}

// MarshalJSON implements json.Marshaler.
func (n *ReturnStatement) MarshalJSON() ([]byte, error) {
	type Alias ReturnStatement
	return json.Marshal(struct {
		Type string `json:"type"`
		*Alias
	}{n.Type(), (*Alias)(n)})
}
