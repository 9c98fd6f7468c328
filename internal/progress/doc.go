// Package progress draws the live copy/move progress of a gdcsort run.
package progress
