package main

import "github.com/zostay/go-mailsend/tools/mailsend/cmd"

func main() {
	cmd.Execute()
}
