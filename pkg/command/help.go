package command

import (
	"fmt"
	"io"
)

// WriteHelp draws the key bindings for translation and rotation, followed by
// the housekeeping keys.
func (in *Interpreter) WriteHelp(w io.Writer) {
	k := func(cmd string) string {
		if key, ok := in.keys.Key(cmd); ok {
			return key
		}
		if key, ok := in.defaults.Key(cmd); ok {
			return key
		}
		return "-"
	}

	fmt.Fprintf(w, "              TRANSLATION                          ROTATION\n\n")
	fmt.Fprintf(w, "                (up)  (forward)                      (up)\n")
	fmt.Fprintf(w, "                   %s  %s                               %s\n", k("move_up"), k("move_forward"), k("turn_up"))
	fmt.Fprintf(w, "                   | /                                |\n")
	fmt.Fprintf(w, "                   |/                                 |\n")
	fmt.Fprintf(w, "      (left)  %s----+----%s  (right)      (left)  %s----+----%s  (right)\n",
		k("move_left"), k("move_right"), k("turn_left"), k("turn_right"))
	fmt.Fprintf(w, "                  /|                                  |\n")
	fmt.Fprintf(w, "                 / |                                  |\n")
	fmt.Fprintf(w, "                %s  %s                                  %s\n", k("move_backward"), k("move_down"), k("turn_down"))
	fmt.Fprintf(w, "       (backward)  (down)                          (down)\n\n")

	rows := [][2]string{
		{k("fly_mode") + "  fly navigation mode", k("increase_step") + "  increase step size by 10%"},
		{k("walk_mode") + "  walk navigation mode", k("decrease_step") + "  decrease step size by 10%"},
		{k("view_mode") + "  view navigation mode", k("increase_angle") + "  increase angle step by 10%"},
		{k("reset_viewpoint") + "  reset", k("decrease_angle") + "  decrease angle step by 10%"},
		{k("help") + "  print this help", k("print_viewpoint") + "  print viewpoint"},
		{k("quit") + "  exit", ""},
	}
	for _, r := range rows {
		fmt.Fprintf(w, "  %-32s%s\n", r[0], r[1])
	}
}
