// Package errors provides structured, actionable error messages for the
// svgkit command line and render server.
//
// Each error carries a code, a category, a short message and optionally the
// location in a scene file, a longer explanation and a hint:
//
//	err := errors.New("E101").
//	    WithOffset("chart.json", data, 42).
//	    WithSuggestion("Check for a trailing comma before the closing brace")
//
//	fmt.Println(err.Format())
//	// Output:
//	// ERROR E101: Scene syntax error
//	//
//	//   chart.json:3:14
//	//
//	//       2 │   "tag": "svg",
//	//   →   3 │   "attrs": [,]
//	//         │              ^
//	//
//	//   Hint: Check for a trailing comma before the closing brace
//
// # Error Codes
//
//   - E1xx: scene files and validation
//   - E2xx: configuration
//   - E3xx: rendering and publishing
//   - E4xx: the render server
//
// Library packages (svg, scene, publish) return ordinary wrapped errors; the
// command line and server convert them with FromError at the boundary.
package errors
