// Package dataset embeds the reference catalog of ancient Greek settlements
// mentioned in Thucydides' History of the Peloponnesian War.
package dataset

import _ "embed"

// SettlementsJSON is the catalog as a JSON array of
// {ancient_name, modern_name, latitude, longitude, type} objects, in catalog order.
//
//go:embed settlements.json
var SettlementsJSON []byte

// Count is the number of records in SettlementsJSON.
const Count = 146
