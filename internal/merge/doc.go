// Package merge implements the dataset merge pass.
//
// Merging keys records by date. Existing records seed the result, fetched
// records overlay it in order, and the output is sorted ascending by date.
// When both sides carry the same date the fetched record wins, which is how
// a placeholder or wrong-locale name gets corrected by a later fetch.
package merge
