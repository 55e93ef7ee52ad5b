// Package cookies keeps the persisted credential of the client.
//
// Jar is the storage medium. It behaves like a browser's document.cookie:
// writes take one Set-Cookie formatted string, a cookie whose expiry has
// already passed is deleted rather than stored, and reads return every live
// cookie as "n1=v1; n2=v2". Rows live in the local SQLite database so a
// session survives restarts of the client.
//
// Store is the credential store on top of any Medium. It percent-encodes
// names and values, renders the cookie attributes (Expires, Path, Domain,
// Secure, SameSite) and parses the medium's string back on every Get.
// Remove is Set with an expiry in the past; there is no other deletion path.
package cookies
