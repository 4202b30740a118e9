// Package definitions holds static tables describing SVG elements and
// attributes, and a validation pass built on them.
//
// Validation is optional and never runs during serialization. The svg
// package stays permissive; callers that want stricter input (the scene
// builder in strict mode, the validate command) call Validate explicitly.
package definitions
