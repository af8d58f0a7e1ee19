// Package viz is the terminal front end: a Bubble Tea model that draws the
// surface, holes and ball on a braille [Canvas] and turns key presses into
// fling gestures.
//
// # Key Bindings
//
//	←/→   - Rotate aim by 15°
//	↑/↓   - Raise or lower power
//	1-9   - Set power directly
//	Space - Fling
//	A     - Toggle autoplay (aims at the nearest hole)
//	P     - Pause/Resume
//	R     - Force reset
//	T     - Cycle color themes
//	Q     - Quit
package viz
