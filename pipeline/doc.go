// Package pipeline chains registry agents into the three-step task flow:
// the task agent produces a draft, the refiner improves it, and the task's
// validator reviews both against the original input.
package pipeline
