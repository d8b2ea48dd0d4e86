package script

import "fmt"

// HomeProbe prints the absolute home directory of the login user.
func HomeProbe() string {
	return "cd ~ && pwd"
}

// WorkDirProbe prints "release" or "current", whichever exists first
// under root, and nothing when neither does.
func WorkDirProbe(root string) string {
	return fmt.Sprintf(
		"if [ -e %s ]; then echo release; elif [ -e %s ]; then echo current; fi",
		Quote(root+"/release"), Quote(root+"/current"))
}
