// Package loader reads policy definitions from YAML files and feeds
// them into the policy store, optionally watching the policy directory
// and hot-reloading the set on change.
//
// A policy file holds a top-level "policies" list. References inside
// comparisons are written either as shorthand strings with a source
// prefix and optional transform ("subject.id", "environment.timestamp
// | hour") or as explicit maps {source, path, transform}. Any other
// scalar or list is a literal. Logical nodes use "and", "or" and "not"
// keys; comparisons use {op, left, right}.
//
//	policies:
//	  - id: deny-after-hours
//	    name: After-hours confidential lockout
//	    priority: 90
//	    effect: deny
//	    target:
//	      objects:
//	        classification: confidential
//	    condition:
//	      or:
//	        - { op: lessOrEqual, left: environment.hour, right: 8 }
//	        - { op: greaterOrEqual, left: environment.hour, right: 18 }
package loader
