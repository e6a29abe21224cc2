// hostfns is a CLI over the hostfns primitives: it adds 32-bit integers
// with overflow checking, prints the greeting, and runs wasm guests
// against the hostfns host module.
package main

func main() {
	Execute()
}
