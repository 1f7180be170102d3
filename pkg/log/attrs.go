package log

import "log/slog"

func FlowName[T ~string](name T) slog.Attr {
	return slog.String("flow", string(name))
}

func InstanceID[T ~string](id T) slog.Attr {
	return slog.String("instance_id", string(id))
}

func Event[T ~string](event T) slog.Attr {
	return slog.String("event", string(event))
}

func Status[T ~string](status T) slog.Attr {
	return slog.String("status", string(status))
}

func URL(url string) slog.Attr {
	return slog.String("url", url)
}

func Key(key string) slog.Attr {
	return slog.String("key", key)
}

func Error(err error) slog.Attr {
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	return slog.String("error", msg)
}

func ErrorString(msg string) slog.Attr {
	return slog.String("error", msg)
}
