package logger

// LogRequest logs catalog HTTP request information.
func LogRequest(method, url string, statusCode int, durationMS float64) {
	fields := map[string]interface{}{
		"method":      method,
		"url":         url,
		"status_code": statusCode,
		"duration_ms": durationMS,
	}

	switch {
	case statusCode >= 200 && statusCode < 300:
		GetLogger().DebugWithFields("catalog request completed", fields)
	case statusCode >= 400 && statusCode < 500:
		GetLogger().WarnWithFields("catalog request client error", fields)
	case statusCode >= 500:
		GetLogger().ErrorWithFields("catalog request server error", fields)
	}
}

// LogTransition logs a lifecycle phase change for one grid item.
func LogTransition(itemID, from, to string) {
	GetLogger().DebugWithFields("item phase transition", map[string]interface{}{
		"item": itemID,
		"from": from,
		"to":   to,
	})
}

// LogDownload logs one bulk-download result.
func LogDownload(filename, kind string, success bool, err error) {
	fields := map[string]interface{}{
		"filename":   filename,
		"media_type": kind,
		"success":    success,
	}

	l := GetLogger().WithFields(fields)
	switch {
	case err != nil:
		l.WithError(err).Error("download failed")
	case success:
		l.Info("download completed")
	default:
		l.Debug("download skipped")
	}
}
