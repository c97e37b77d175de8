package reserved

// keywords shared by every edition.
var coreKeywords = []string{
	"break", "case", "catch", "continue", "default", "delete", "do",
	"else", "finally", "for", "function", "if", "in", "instanceof",
	"new", "return", "switch", "this", "throw", "try", "typeof", "var",
	"void", "while", "with",
}

var literals = []string{"null", "true", "false"}

// builtinES3 is ECMA-262 3rd edition. It has no strict mode and reserves the
// Java-era future words.
var builtinES3 = NewEdition(ES3, "es3").
	Aliases("3", "ecmascript3").
	Keywords(coreKeywords...).
	Keywords(literals...).
	Keywords(
		"abstract", "boolean", "byte", "char", "class", "const",
		"debugger", "double", "enum", "export", "extends", "final",
		"float", "goto", "implements", "import", "int", "interface",
		"long", "native", "package", "private", "protected", "public",
		"short", "static", "super", "synchronized", "throws",
		"transient", "volatile",
	).
	Build()

var builtinES5 = NewEdition(ES5, "es5").
	Aliases("5", "ecmascript5").
	Keywords(coreKeywords...).
	Keywords(literals...).
	Keywords("debugger").
	Keywords("class", "const", "enum", "export", "extends", "import", "super").
	StrictKeywords(
		"implements", "interface", "let", "package", "private",
		"protected", "public", "static", "yield",
	).
	Build()

var builtinES6 = NewEdition(ES6, "es6").
	Aliases("6", "es2015", "ecmascript6").
	Extends(builtinES5).
	Keywords("await").
	Build()

func init() {
	Register(builtinES3)
	Register(builtinES5)
	Register(builtinES6)
}
