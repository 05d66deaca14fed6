// Package enrich maps the everyday cue words in an ingested text onto
// chemistry concepts and the human strategies that mirror them.
//
// The rules are fixed: four cue words ("dirty", "washed", "clean",
// "loop") drive the metaphors, sections and strategies. The term
// dictionary only supplies the wording of expansions.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or service package
package enrich
