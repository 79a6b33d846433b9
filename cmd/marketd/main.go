package main

import "github.com/Gravikko/nft-marketplace-sub000/internal/cli"

func main() {
	cli.Execute()
}
