// Package workshop talks to the Steam Workshop changelog pages and decides
// whether a downloaded mod is older than its latest published revision.
//
// There is no API for this: the changelog page is fetched as HTML and the
// first announcement's paragraph id, a Unix timestamp, is taken as the time
// of the latest update. It is compared with the creation time of the local
// download directory.
package workshop
