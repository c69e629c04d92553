// Package detectors implements the entropy heuristic used by veto: a
// tokenizer for decoded text, a Shannon entropy scorer, the file and token
// policy filters, and a masker for safe display of flagged values.
package detectors
