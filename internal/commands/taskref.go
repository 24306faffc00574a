package commands

import (
	"errors"
	"fmt"
	"strconv"
	"unicode"

	"daylist/internal/service"
)

// TaskRef represents a parsed task reference.
type TaskRef struct {
	Letter    rune // 0 if no letter, 'a'-'z' otherwise
	TaskNum   int  // 1-based task number
	HasLetter bool // true if a list letter was provided
}

// ErrTaskRefRequired indicates no task reference was provided.
var ErrTaskRefRequired = errors.New("task reference required")

// ParseTaskRef parses a task reference from args.
//
// Parsing rules:
// 1. If first arg is all digits → default view reference
// 2. If first arg is <letter><digits> (e.g., a1, b12) → combined reference
// 3. If first arg is single letter and second arg is all digits → separated reference (a 1)
// 4. If first arg is single letter with no second arg → error: task reference required
// 5. Otherwise → error: invalid task reference: <ref>
func ParseTaskRef(args []string) (TaskRef, error) {
	if len(args) == 0 {
		return TaskRef{}, ErrTaskRefRequired
	}

	firstArg := args[0]

	// Case 1: All digits → default view, numeric reference
	if isAllDigits(firstArg) {
		num, err := strconv.Atoi(firstArg)
		if err != nil {
			return TaskRef{}, fmt.Errorf("invalid task reference: %s", firstArg)
		}
		return TaskRef{TaskNum: num, HasLetter: false}, nil
	}

	if len(firstArg) > 0 && isListLetter(rune(firstArg[0])) {
		letter := rune(firstArg[0])

		// Case 2: <letter><digits> (e.g., a1, b12)
		if len(firstArg) > 1 && isAllDigits(firstArg[1:]) {
			num, err := strconv.Atoi(firstArg[1:])
			if err != nil {
				return TaskRef{}, fmt.Errorf("invalid task reference: %s", firstArg)
			}
			return TaskRef{Letter: letter, TaskNum: num, HasLetter: true}, nil
		}

		// Case 3: Single letter, check for second arg with digits
		if len(firstArg) == 1 {
			if len(args) < 2 {
				// Case 4: Single letter with no second arg
				return TaskRef{}, ErrTaskRefRequired
			}
			secondArg := args[1]
			if isAllDigits(secondArg) {
				num, err := strconv.Atoi(secondArg)
				if err != nil {
					return TaskRef{}, fmt.Errorf("invalid task reference: %s", secondArg)
				}
				return TaskRef{Letter: letter, TaskNum: num, HasLetter: true}, nil
			}
			return TaskRef{}, fmt.Errorf("invalid task reference: %s", firstArg)
		}
	}

	// Case 5: Invalid reference
	return TaskRef{}, fmt.Errorf("invalid task reference: %s", firstArg)
}

// isAllDigits returns true if s consists only of ASCII digits and is non-empty.
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// isListLetter returns true if r is a lowercase letter a-z.
func isListLetter(r rune) bool {
	return r >= 'a' && r <= 'z'
}

// ListByLetter resolves a list letter against the fetched lists.
// Letters are assigned to named lists in order, skipping the default view,
// so references stay stable whether or not a list currently has open tasks.
func ListByLetter(lists []service.TaskList, letter rune) (service.TaskList, error) {
	current := 'a'
	for _, list := range lists {
		if list.IsDefault {
			continue
		}
		if current == letter {
			return list, nil
		}
		current++
		if current > 'z' {
			break
		}
	}
	return service.TaskList{}, fmt.Errorf("list letter not found: %c", letter)
}

// LetterFor returns the letter assigned to the given named list, or 0 if
// the list is the default view or beyond 'z'.
func LetterFor(lists []service.TaskList, listID string) rune {
	current := 'a'
	for _, list := range lists {
		if list.IsDefault {
			continue
		}
		if list.ID == listID {
			if current > 'z' {
				return 0
			}
			return current
		}
		current++
	}
	return 0
}
