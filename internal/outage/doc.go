// Package outage turns the per-region HTML tables published by the Central
// Electricity Board into outage records.
//
// The page embeds a JSON object mapping region keys ("blackriver", "moka",
// ...) to an HTML fragment holding one table with Date, Locality and Streets
// columns. Build decodes that object and parses every region into a Catalog.
//
// Rows without a date are skipped with a warning. A date that is present but
// unreadable fails the whole region, since it means the page format changed.
// What happens to the rest of the catalog then depends on the Policy.
package outage
