package common

// WipeByteArray overwrites the contents of b with zeros. Passwords read from
// the terminal are wiped once the request body has been built.
//
// If the slice is nil, the function does nothing.
func WipeByteArray(b []byte) {
	if b == nil {
		return
	}
	for i := range b {
		b[i] = 0
	}
}
