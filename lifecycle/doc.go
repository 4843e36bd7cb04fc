// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package lifecycle derives a poll's temporal state and access rights.

All functions here are pure: they take the poll aggregate and an explicit
clock reading, and never touch storage. Closing is derived, not stored —
a poll is closed whenever the current time is past its closing datetime —
while completion is a separate sticky flag set only by the outcome engine
or an explicit administrative update.

The composite rules used everywhere else:

  - a poll is voteable iff it is open, not completed, and (public OR the
    caller's voter id is enrolled);
  - destructive ballot operations are locked once the poll is completed,
    independent of phase;
  - the outcome is viewable by the owner always, and by voters when
    show_outcome is set and the poll is closed, completed, has no closing
    datetime, or allows early viewing.
*/
package lifecycle
