// Package turnstile is a log rotation module designed to plug directly into a
// standard go logger. Write through one stable io.WriteCloser and the files
// underneath it are rotated by size or age, and old ones are pruned by count or age.
//
// With a Filepath of /var/log/service.log the file receiving writes is
// /var/log/service.ACTIVE.log. When it rotates it is renamed to
// /var/log/service.log.N, where N is one more than the highest index on disk,
// and a new active file is created. service.log.1 is always the oldest file
// still around; pruning deletes files but never renumbers them. Concatenate the
// rotated files in ascending order, then the active file, to get the whole stream.
//
// Rotation is decided right before each write, using the active file's size and
// modification time as they are at that moment. Nothing runs in the background.
// If the decision can't be made (stat failed) or pruning fails, a warning is
// printed and the write goes ahead. If the rotation itself fails, the write
// returns an *IOError and nothing on disk has changed.
//
// Use this package if you write your own log file, and you're tired of your
// log file growing indefinitely. Only one RotatingFile (in one process) should
// own a Filepath at a time.
package turnstile
