// Package scraper downloads the Central Electricity Board power outage page
// and extracts the region data embedded in it.
//
// The page carries its tables in a script variable:
//
//	var arDistrictLocations = {"blackriver":"<h3>Black River</h3>...", ...};
//
// Fetch returns the JSON text of that object; FetchCatalog also parses it.
package scraper
