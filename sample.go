// sample.go
package main

import (
	"errors"
	"strings"
)

var errDivideByZero = errors.New("division by zero")

// Title: Greet a User
// Input 1: Name
// Input 2: Number of exclamation marks
// Output: Greeting
func Greet(name string, excitement int) string {
	return "Hello, " + name + strings.Repeat("!", excitement)
}

// Title: Divide Two Integers
// Input 1: Dividend
// Input 2: Divisor
// Output: Quotient
func Divide(a, b int) (int, error) {
	if b == 0 {
		return 0, errDivideByZero
	}
	return a / b, nil
}
