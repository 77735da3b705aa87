package autocomplete

import (
	"sync"

	"github.com/JoongWonSeo/json-autocomplete/grammar"
)

// jsonGrammar is built on first use and shared read-only by every call.
var jsonGrammar = sync.OnceValue(newJSONGrammar)

// newJSONGrammar assembles the JSON grammar from json.org.
//
// Every branch point (choice, optional, repetition) must be decidable from a
// single byte, so whitespace is attached to the end of constructs instead of
// their start: each construct begins with a non-whitespace byte.
func newJSONGrammar() grammar.Node {
	digit := grammar.Range('0', '9')
	digits := grammar.Seq(digit, grammar.Rep(digit))
	ws := grammar.Rep(grammar.Whitelist(" \n\r\t"))

	number := grammar.Seq(
		grammar.Opt(grammar.Lit("-")),
		grammar.Or(
			grammar.Lit("0"),
			grammar.Seq(grammar.Range('1', '9'), grammar.Rep(digit)),
		),
		grammar.Opt(grammar.Seq(grammar.Lit("."), digits)),
		grammar.Opt(grammar.Seq(
			grammar.Or(grammar.Lit("e"), grammar.Lit("E")),
			grammar.Opt(grammar.Or(grammar.Lit("+"), grammar.Lit("-"))),
			digits,
		)),
	)

	hexDigit := grammar.Or(digit, grammar.Range('a', 'f'), grammar.Range('A', 'F'))
	quote := grammar.Lit(`"`)
	str := grammar.Seq(
		quote,
		grammar.Rep(grammar.Or(
			grammar.Blacklist(`"\`),
			grammar.Seq(
				grammar.Lit(`\`),
				grammar.Or(
					grammar.Whitelist(`"\/bfnrt`),
					grammar.Seq(grammar.Lit("u"), hexDigit, hexDigit, hexDigit, hexDigit),
				),
			),
		)),
		quote,
	)

	value := grammar.Ref("value")
	object := grammar.Ref("object")
	array := grammar.Ref("array")

	// null comes first: it is the value of an empty prefix.
	value.Bind(grammar.Seq(
		grammar.Or(
			grammar.Lit("null"),
			str,
			number,
			object,
			array,
			grammar.Lit("true"),
			grammar.Lit("false"),
		),
		ws,
	))

	member := grammar.Seq(str, ws, grammar.Lit(":"), ws, value)
	object.Bind(grammar.Seq(
		grammar.Lit("{"), ws,
		grammar.Opt(grammar.Seq(
			member,
			grammar.Rep(grammar.Seq(grammar.Lit(","), ws, member)),
		)),
		grammar.Lit("}"),
	))

	array.Bind(grammar.Seq(
		grammar.Lit("["), ws,
		grammar.Opt(grammar.Seq(
			value,
			grammar.Rep(grammar.Seq(grammar.Lit(","), ws, value)),
		)),
		grammar.Lit("]"),
	))

	return grammar.Seq(ws, value)
}
