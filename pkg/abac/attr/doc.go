// Package attr provides the attribute value model used by the decision
// engine: a closed tagged variant over string, number, boolean,
// timestamp and list values, string-keyed attribute maps, and value
// references that resolve dotted paths against a request's subject,
// object and environment contexts.
//
// The zero Value is the distinguished Undefined value. Looking up an
// absent key in a Map yields Undefined, and Undefined can never satisfy
// an equality, ordering or membership comparison. Missing data is
// therefore fail-closed by construction, without errors.
//
// References may carry an optional transform (hour, dayOfWeek,
// lowercase, length) applied after resolution. A transform applied to
// Undefined, or to a kind it does not accept, yields Undefined; an
// unknown transform name is an authoring defect and resolves with an
// error.
package attr
