// Package placeholder fills argument placeholders into shell command strings.
//
// Two syntaxes select an argument by 1-based position or by flag name, with
// optional pipe-separated aliases:
//
//	{{ key }}   the argument's full rendering: "--name value", "-n", or a
//	            positional value
//	${ key }    the value only, without the flag name
//	${@} {{@}}  every argument, positional first, then flags
//
// Every substituted word is shell-quoted, and substituted text is never read
// again for placeholders. Placeholders naming arguments that were not given
// are removed, while plain ${VAR} shell expansions are left alone. Runs of
// spaces and tabs in the template collapse.
package placeholder
