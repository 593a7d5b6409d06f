package sample

import "fmt"

// Version is the application version.
const Version = "1.0.0"

// User is a complex struct.
type User struct {
	Name string
}

// Title: Get Debug Level
// Input 1: Debug Level Name
// Output: Debug Level
func GetDebugLevel(name string) int {
	return len(name)
}

// Title: Join Words
// Input 1: First word
// Input 2: Second word
// Output: Joined string
func Join(a, b string) string {
	return a + " " + b
}

// Title: Apply Callback
// Input 1: Callback
func Apply(fn func(x int, y int) int) int {
	return fn(1, 2)
}

/*
Title: Sum All
Input 1: Values
*/
func SumAll(prefix string, values ...int) int {
	return len(prefix)
}

// NoMarkup has an ordinary Go comment.
func NoMarkup() {}

func Undocumented(x int) {}

// Title: Rename User
// Input 1: New name
func (u *User) Rename(name string) {
	fmt.Println(name)
	u.Name = name
}
