/*
Package tape implements the unbounded binary tape of the Turing engine.

The tape is addressed by signed logical positions. Internally it keeps a
slice of cells and an origin offset (the slice index of logical position 0);
reads outside the slice return the blank symbol without materializing
anything, writes grow the slice in whichever direction is needed.

Every write appends a Frame to the history. Each frame carries the origin it
was taken at, so growing the live tape to the left never rewrites older
frames.
*/
package tape
