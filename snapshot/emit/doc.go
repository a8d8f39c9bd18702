// Package emit renders snapshot groups into template files.
//
// Each Emitter turns one snapshot.Group into the bytes of one file named <folder>.tpl.<extension>.
// The YAML emitter writes a top-level plan-snapshots sequence of name/input maps, the XML emitter
// writes plan-snapshot elements with the plan in a CDATA section.
package emit
