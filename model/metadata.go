package model

// Record is one score's side-channel metadata, loaded once, merged and
// discarded. Values are whatever the JSON held.
type Record = map[string]any
