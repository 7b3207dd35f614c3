// Package viz holds the drawing support shared by the frontends.
//
//   - [Canvas]: braille sub-pixel canvas used by the terminal frontend
//   - [TrailStyle], [CursorColor]: colours for trails and the cursor
//   - [Theme], [Styles]: lipgloss colour schemes for the terminal
//   - [Sparkline]: compact history plot
//   - [Scene]: one frame of drawable state, drawn with [Canvas.DrawScene]
package viz
