package editor

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Confirm asks a yes/no question on the terminal. Anything but an explicit
// yes counts as a decline.
func Confirm(question string) bool {
	fmt.Printf("%s [y/N]: ", question)
	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

// Progress prints one batch progress step in the CLI's marker style.
func Progress(index, total int, name string) {
	fmt.Printf("→ [%d/%d] %s\n", index, total, name)
}
