// rsafront v1.0
//
// rsafront is a front-end for an external RSA file-encryption engine
// (rsa_encrypt). It finds the engine, checks that it runs, and invokes
//
//	rsa_encrypt encrypt <input> <name>_encrypted.enc <name>_keys.key
//
// with output names that never overwrite existing files, then shows the
// engine's output and the generated key.
//
// Build modes:
//   - Default build: GUI + CLI (requires graphics libraries)
//   - CLI-only build: go build -tags cli (no graphics dependencies)

package main

// version is the application version displayed in the window title.
const version = "v1.0"

func main() {
	run()
}
