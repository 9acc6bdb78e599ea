package main

import (
	"context"

	"github.com/bjulian5/varats/cmd"
)

func main() {
	ctx := context.Background()
	cmd.Execute(ctx)
}
