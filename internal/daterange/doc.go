// Package daterange parses the French free-text outage windows published by
// the Central Electricity Board into naive start/end instants.
//
// A typical input looks like:
//
//	Le Dimanche 7 août 2022 de 09:00:00 à 15:00:00
//
// Leading words (article, weekday) are ignored. The text must end with the
// end time. Both instants share the calendar date written in the text, even
// when the end time is earlier than the start time.
package daterange
