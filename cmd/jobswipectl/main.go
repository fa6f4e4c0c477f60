// Command jobswipectl runs schema migrations, reference seeding and match
// cleanup against the jobswipe database.
package main

import "os"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
