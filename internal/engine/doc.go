// Package engine runs the ball: two [motion.AxisMotion] instances, the
// velocity [motion.Tracker], the capture [capture.ZoneSet] and the
// [sequence.Sequencer], fused into one frame-driven state machine.
//
// Everything happens on the caller's goroutine inside [Controller.Step]:
// the X axis steps, then the Y axis, then the running visual script.
// Every velocity report is followed synchronously by the capture check,
// so a capture dispatched by the X axis is visible to the Y axis within
// the same frame.
//
//	ctrl, _ := engine.New(*cfg, nil)
//	ctrl.Measure(cfg.Surface)
//	ctrl.GestureDown()
//	ctrl.OnFlingGesture(-900, 400)
//	for ctrl.Phase() != engine.PhaseIdle {
//		ctrl.Step(1.0 / 60)
//	}
package engine
