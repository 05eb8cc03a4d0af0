package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-kit/kit/endpoint"
	"github.com/superj80820/personalink/kit/code"
	httpKit "github.com/superj80820/personalink/kit/http"
	loggerKit "github.com/superj80820/personalink/kit/logger"
)

func CreateLoggingMiddleware(logger *loggerKit.Logger) endpoint.Middleware {
	return func(e endpoint.Endpoint) endpoint.Endpoint {
		return func(ctx context.Context, request interface{}) (response interface{}, err error) {
			defer func(begin time.Time) {
				url := httpKit.GetURL(ctx)

				var (
					errorMsg       string
					errorCallStack string
					statusCode     = http.StatusOK
				)
				if err != nil {
					errorCode := code.ParseErrorCode(err)
					statusCode = errorCode.GeneralCode
					errorMsg = errorCode.Error()
					errorCallStack = errorCode.CallStack
					if errorCallStack == "" {
						errorCallStack = fmt.Sprintf("%+v", err)
					}
				}
				loggerWithMetadata := logger.With(
					loggerKit.Int("status", statusCode),
					loggerKit.String("error", errorMsg),
					loggerKit.String("error-call-stack", errorCallStack),
					loggerKit.String("method", httpKit.GetMethod(ctx)),
					loggerKit.String("path", url),
					loggerKit.String("ip", httpKit.GetIP(ctx)),
					loggerKit.String("user-agent", httpKit.GetUserAgent(ctx)),
					loggerKit.Int64("request-id", httpKit.GetRequestID(ctx)),
					loggerKit.String("trace-id", httpKit.GetTraceID(ctx)),
					loggerKit.Duration("latency", time.Since(begin)),
				)

				if statusCode >= http.StatusInternalServerError {
					loggerWithMetadata.Error(url)
				} else {
					loggerWithMetadata.Info(url)
				}
			}(time.Now())

			return e(ctx, request)
		}
	}
}
