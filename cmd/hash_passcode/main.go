// Command hash_passcode prints the bcrypt hash to put in ADMIN_PASSCODE_HASH.
// The passcode is read from the first line of stdin.
package main

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/SscSPs/drycleaner_app/internal/utils"
)

func main() {
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		slog.Error("Failed to read passcode from stdin", slog.String("error", err.Error()))
		os.Exit(1)
	}

	hash, err := utils.HashPasscode(strings.TrimSpace(line))
	if err != nil {
		slog.Error("Failed to hash passcode", slog.String("error", err.Error()))
		os.Exit(1)
	}
	fmt.Println(hash)
}
