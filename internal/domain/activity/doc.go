// Package activity derives reading-activity figures from card creation
// times: the consecutive-day streak and the counts for the current
// calendar week, month and year.
//
// Everything here is a pure function of its inputs. Day boundaries are
// taken in a single configured time zone, weeks start on Monday, and every
// window is half-open: [start, next start).
package activity
