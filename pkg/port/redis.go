package port

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/tidwall/redcon"
)

const RedisOk = "OK"

var address = flag.String("address", ":6390", "The ip:port to listen on for Redis protocol.")

var (
	ErrWrongArgs      = errors.New("wrong number of arguments")
	ErrUnknownCommand = errors.New("unknown command")
	ErrSyntax         = errors.New("syntax error")
	ErrNotInteger     = errors.New("value is not an integer or out of range")
)

var commandsMetric = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "commands_total",
	Help: "The total number of handled Redis commands",
}, []string{
	"command", // Upper case command name; "UNKNOWN" for unsupported commands.
	"status",  // Either "ok" or "error".
})

// redisCommand represents a Redis command with its arguments.
type redisCommand struct {
	command string
	args    []string
}

// redisOutput conforms to a real Redis server output on non pub / sub commands.
type redisOutput struct {
	closeConnection bool     // Closes the connection if true.
	writeNil        bool     // Writes a nil value if true.
	err             *string  // Error to return if set.
	writeInt        *int     // Writes an integer value if set.
	writeBulk       *string  // Writes a bulk string if set.
	writeArray      []string // Writes an array of bulk strings if `isArray` is set.
	isArray         bool
	writeString     string // Writes a simple string otherwise.
}

func closeRedisConnection(msg string) redisOutput {
	return redisOutput{writeString: msg, closeConnection: true}
}

func writeRedisNil() redisOutput {
	return redisOutput{writeNil: true}
}

func writeRedisInt(i int) redisOutput {
	return redisOutput{writeInt: &i}
}

func writeRedisString(s string) redisOutput {
	return redisOutput{writeString: s}
}

func writeRedisBulk(s string) redisOutput {
	return redisOutput{writeBulk: &s}
}

func writeRedisArray(values []string) redisOutput {
	return redisOutput{writeArray: values, isArray: true}
}

func writeRedisError(err error) redisOutput {
	msg := "ERR " + err.Error()
	return redisOutput{err: &msg}
}

func wrongArgs(command string) redisOutput {
	return writeRedisError(fmt.Errorf("%w for '%s' command", ErrWrongArgs, strings.ToLower(command)))
}

// writeTo sends the output over the given connection.
func (o redisOutput) writeTo(conn redcon.Conn) {
	switch {
	case o.err != nil:
		conn.WriteError(*o.err)
	case o.writeNil:
		conn.WriteNull()
	case o.writeInt != nil:
		conn.WriteInt(*o.writeInt)
	case o.writeBulk != nil:
		conn.WriteBulkString(*o.writeBulk)
	case o.isArray:
		conn.WriteArray(len(o.writeArray))
		for _, v := range o.writeArray {
			conn.WriteBulkString(v)
		}
	default:
		conn.WriteString(o.writeString)
	}
	if o.closeConnection {
		if err := conn.Close(); err != nil {
			slog.Error("Failed to close connection.", "error", err)
		}
	}
}

type redisHandler struct {
	store *ListStore
}

// newRedisHandler creates a new redisHandler.
func newRedisHandler(store *ListStore) (*redisHandler, error) {
	if store == nil {
		return nil, errors.New("expected a non-nil list store")
	}
	return &redisHandler{store: store}, nil
}

// rangeBounds converts Redis LRANGE indexes (negative ones count from the tail) into slice bounds over `size` items.
func rangeBounds(start, stop, size int) (int, int, bool /*nonEmpty*/) {
	if start < 0 {
		start = max(size+start, 0)
	}
	if stop < 0 {
		stop = size + stop
	}
	stop = min(stop, size-1)
	if start > stop || start >= size {
		return 0, 0, false
	}
	return start, stop + 1, true
}

func (rh *redisHandler) push(cmd redisCommand, front bool) redisOutput {
	if len(cmd.args) < 2 {
		return wrongArgs(cmd.command)
	}
	var length int
	rh.store.Update(cmd.args[0], true /*create*/, func(l *StringList) {
		for _, v := range cmd.args[1:] {
			if front {
				l.Prepend(v)
			} else {
				l.Append(v)
			}
		}
		length = l.Len()
	})
	return writeRedisInt(length)
}

func (rh *redisHandler) pop(cmd redisCommand, front bool) redisOutput {
	if len(cmd.args) != 1 {
		return wrongArgs(cmd.command)
	}
	var (
		value  string
		popped bool
	)
	rh.store.Update(cmd.args[0], false /*create*/, func(l *StringList) {
		if front {
			value, popped = l.PopFront()
		} else {
			value, popped = l.PopBack()
		}
	})
	if !popped {
		return writeRedisNil()
	}
	return writeRedisBulk(value)
}

// insert handles LINSERT: the new length, -1 if the pivot is missing, 0 if the list doesn't exist.
func (rh *redisHandler) insert(cmd redisCommand) redisOutput {
	if len(cmd.args) != 4 {
		return wrongArgs(cmd.command)
	}
	name, where, pivot, element := cmd.args[0], strings.ToUpper(cmd.args[1]), cmd.args[2], cmd.args[3]
	if where != "BEFORE" && where != "AFTER" {
		return writeRedisError(ErrSyntax)
	}
	result := 0
	rh.store.Update(name, false /*create*/, func(l *StringList) {
		sizeBefore := l.Len()
		if where == "BEFORE" {
			l.InsertBefore(pivot, element)
		} else {
			l.InsertAfter(pivot, element)
		}
		if l.Len() == sizeBefore {
			result = -1
		} else {
			result = l.Len()
		}
	})
	return writeRedisInt(result)
}

// remove handles LREM. Every removal deletes the match closest to either end; count 0 removes all matches.
func (rh *redisHandler) remove(cmd redisCommand) redisOutput {
	if len(cmd.args) != 3 {
		return wrongArgs(cmd.command)
	}
	count, err := strconv.Atoi(cmd.args[1])
	if err != nil {
		return writeRedisError(ErrNotInteger)
	}
	// Unsigned so that math.MinInt keeps its magnitude.
	limit := uint(count)
	if count < 0 {
		limit = -limit
	}
	removed := 0
	rh.store.Update(cmd.args[0], false /*create*/, func(l *StringList) {
		for limit == 0 || uint(removed) < limit {
			sizeBefore := l.Len()
			l.Delete(cmd.args[2])
			if l.Len() == sizeBefore {
				return
			}
			removed++
		}
	})
	return writeRedisInt(removed)
}

func (rh *redisHandler) listRange(cmd redisCommand) redisOutput {
	if len(cmd.args) != 3 {
		return wrongArgs(cmd.command)
	}
	start, startErr := strconv.Atoi(cmd.args[1])
	stop, stopErr := strconv.Atoi(cmd.args[2])
	if startErr != nil || stopErr != nil {
		return writeRedisError(ErrNotInteger)
	}
	values := []string{}
	rh.store.Read(cmd.args[0], func(l *StringList) {
		all := l.ToSlice()
		if from, to, ok := rangeBounds(start, stop, len(all)); ok {
			values = all[from:to]
		}
	})
	return writeRedisArray(values)
}

// position handles LPOS: the head-first index of the first match, or nil.
func (rh *redisHandler) position(cmd redisCommand) redisOutput {
	if len(cmd.args) != 2 {
		return wrongArgs(cmd.command)
	}
	index := -1
	rh.store.Read(cmd.args[0], func(l *StringList) {
		i := 0
		for v := range l.All() {
			if v == cmd.args[1] {
				index = i
				return
			}
			i++
		}
	})
	if index < 0 {
		return writeRedisNil()
	}
	return writeRedisInt(index)
}

// find handles LFIND: the head-first index of the match the bidirectional search lands on, or nil. It differs from
// LPOS when the element repeats, since a match near the tail is found before one in the middle.
func (rh *redisHandler) find(cmd redisCommand) redisOutput {
	if len(cmd.args) != 2 {
		return wrongArgs(cmd.command)
	}
	index := -1
	rh.store.Read(cmd.args[0], func(l *StringList) {
		node, found := l.Find(cmd.args[1])
		if !found {
			return
		}
		index = 0
		for n := node.Prev(); n != nil; n = n.Prev() {
			index++
		}
	})
	if index < 0 {
		return writeRedisNil()
	}
	return writeRedisInt(index)
}

// end handles LHEAD and LTAIL.
func (rh *redisHandler) end(cmd redisCommand, head bool) redisOutput {
	if len(cmd.args) != 1 {
		return wrongArgs(cmd.command)
	}
	var (
		value string
		found bool
	)
	rh.store.Read(cmd.args[0], func(l *StringList) {
		if head {
			value, found = l.Head()
		} else {
			value, found = l.Tail()
		}
	})
	if !found {
		return writeRedisNil()
	}
	return writeRedisBulk(value)
}

func (rh *redisHandler) handle(cmd redisCommand) redisOutput {
	switch cmd.command {
	case "PING":
		if len(cmd.args) == 1 {
			return writeRedisBulk(cmd.args[0])
		}
		return writeRedisString("PONG")
	case "QUIT":
		return closeRedisConnection(RedisOk)
	case "RPUSH":
		return rh.push(cmd, false /*front*/)
	case "LPUSH":
		return rh.push(cmd, true /*front*/)
	case "RPOP":
		return rh.pop(cmd, false /*front*/)
	case "LPOP":
		return rh.pop(cmd, true /*front*/)
	case "LINSERT":
		return rh.insert(cmd)
	case "LREM":
		return rh.remove(cmd)
	case "LRANGE":
		return rh.listRange(cmd)
	case "LPOS":
		return rh.position(cmd)
	case "LFIND":
		return rh.find(cmd)
	case "LHEAD":
		return rh.end(cmd, true /*head*/)
	case "LTAIL":
		return rh.end(cmd, false /*head*/)
	case "LLEN":
		if len(cmd.args) != 1 {
			return wrongArgs(cmd.command)
		}
		length := 0
		rh.store.Read(cmd.args[0], func(l *StringList) { length = l.Len() })
		return writeRedisInt(length)
	case "LREVERSE":
		if len(cmd.args) != 1 {
			return wrongArgs(cmd.command)
		}
		if !rh.store.Update(cmd.args[0], false /*create*/, func(l *StringList) { l.Reverse() }) {
			return writeRedisNil()
		}
		return writeRedisString(RedisOk)
	case "DEL":
		if len(cmd.args) < 1 {
			return wrongArgs(cmd.command)
		}
		return writeRedisInt(rh.store.Delete(cmd.args...))
	case "KEYS":
		if len(cmd.args) != 1 {
			return wrongArgs(cmd.command)
		}
		return writeRedisArray(rh.store.Names(cmd.args[0]))
	case "FLUSHALL":
		rh.store.Flush()
		return writeRedisString(RedisOk)
	default:
		return writeRedisError(fmt.Errorf("%w '%s'", ErrUnknownCommand, cmd.command))
	}
}

// serve runs a single command and records it in the commands metric.
func (rh *redisHandler) serve(cmd redisCommand) redisOutput {
	output := rh.handle(cmd)
	label := cmd.command
	if output.err != nil && strings.HasPrefix(*output.err, "ERR "+ErrUnknownCommand.Error()) {
		label = "UNKNOWN" // Keep the metric cardinality bounded.
	}
	status := "ok"
	if output.err != nil {
		status = "error"
	}
	commandsMetric.WithLabelValues(label, status).Inc()
	return output
}

// RunRedisServer starts a Redis protocol server serving the lists of `store` until `ctx` is cancelled.
func RunRedisServer(ctx context.Context, store *ListStore) error {
	if *address == "" {
		return errors.New("expected a non-empty --address flag")
	}

	redisHandler, err := newRedisHandler(store)
	if err != nil {
		return fmt.Errorf("failed to create a new redis handler: %w", err)
	}

	redisServer := redcon.NewServerNetwork("tcp" /*net*/, *address,
		/*handler*/ func(conn redcon.Conn, cmd redcon.Command) {
			// Convert redcon.Command to redisCommand.
			command := redisCommand{command: strings.ToUpper(string(cmd.Args[0])), args: make([]string, len(cmd.Args)-1)}
			for i := 1; i < len(cmd.Args); i++ {
				command.args[i-1] = string(cmd.Args[i])
			}
			redisHandler.serve(command).writeTo(conn)
		},
		/*accept*/ func(conn redcon.Conn) bool {
			return true // Accept all connections.
		},
		/*close*/ func(conn redcon.Conn, err error) {
			if err != nil {
				slog.Debug("Connection closed with an error.", "remote", conn.RemoteAddr(), "error", err)
			}
		})

	listening := make(chan error, 1)
	serverErrSignal := make(chan error, 1)
	go func() {
		serverErrSignal <- redisServer.ListenServeAndSignal(listening)
		close(serverErrSignal)
	}()
	if err := <-listening; err != nil {
		return fmt.Errorf("failed to listen on %s: %w", *address, err)
	}
	slog.Info("Serving lists over the Redis protocol.", "address", redisServer.Addr().String())

	return awaitShutdown(ctx, redisServer, serverErrSignal, store)
}

// awaitShutdown blocks until `ctx` is cancelled or the server reports an error, closing the store either way.
func awaitShutdown(ctx context.Context, server io.Closer, serverErrSignal <-chan error, store *ListStore) error {
	select {
	case <-ctx.Done():
		serverErr := server.Close()
		storeErr := store.Close()
		if exitErr := errors.Join(serverErr, storeErr); exitErr != nil {
			return fmt.Errorf("failed to close linear: %w", exitErr)
		}
	case err := <-serverErrSignal:
		if err == nil {
			err = errors.New("server exited")
		}
		return fmt.Errorf("redis server stopped unexpectedly: %w", errors.Join(err, store.Close()))
	}

	return nil // Exited with no errors.
}
