package ui

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// PromptChoice lists options numbered from 1 and reads a choice from in
// until a valid number is entered. It returns the 0-indexed choice, or -1
// when the input ends.
func PromptChoice(in io.Reader, prompt string, options []string) int {
	fmt.Fprintln(Stdout, prompt)
	for i, option := range options {
		fmt.Fprintf(Stdout, "%d: %s\n", i+1, option)
	}

	reader := bufio.NewReader(in)
	for {
		fmt.Fprint(Stdout, "Input: ")
		line, err := reader.ReadString('\n')
		if n, convErr := strconv.Atoi(strings.TrimSpace(line)); convErr == nil && n >= 1 && n <= len(options) {
			return n - 1
		}
		if err != nil {
			return -1
		}
	}
}
