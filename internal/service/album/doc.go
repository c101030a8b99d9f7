// Package album downloads every track of an album listing page.
// It validates the album URL, finds the track pages on the listing,
// resolves a download link of the requested quality on each of them
// and streams the files into a folder named after the album.
package album
