// Package errors provides coded, actionable errors for the linkstore tools.
//
// Errors from the reactive runtime and the store builder are plain Go error
// values. Classify maps them onto registered codes so the CLI can print a
// consistent diagnostic:
//
//	L001  duplicate store member
//	L002  linked state must produce a record
//	L003  state written during a computation
//	L004  unknown store member
//	L005  dependency cycle
//	L006  store member is not writable
//	L007  wrong store member kind
//	L010  invalid linkstore.toml
//	L011  invalid state file
//	L012  unsupported state file format
//	L013  file watch failed
//
// Errors that point into a file carry a Location and the surrounding lines:
//
//	err := errors.New("L011").
//	    Wrap(decodeErr).
//	    WithLocationFromError("state.toml", decodeErr)
//
//	fmt.Println(err.Format())
//	// error[L011] Invalid state file (input)
//	//   --> state.toml:3:7
//	//        1 | [user]
//	//        2 | name = "Ada"
//	//   >    3 | age = = 36
//	//          |       ^
//	//
//	//   cause: toml: ...
//	//   The state file could not be decoded, or its top level is not a table.
//	//   hint: State files must be a JSON object or a TOML document.
package errors
