package imgproc

import "fmt"

func unknownCommandError(name string) error {
	return fmt.Errorf("pindou/imgproc: unknown command %q", name)
}
