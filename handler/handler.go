// Package handler validates and throttles verification form requests before
// handing accepted submissions to the agent.
package handler

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/aws/aws-lambda-go/events"

	"github.com/lettered/verifyapi/form"
	"github.com/lettered/verifyapi/ops"
	"github.com/lettered/verifyapi/ratelimit"
)

// Handler implements the POST /api/verification-submit endpoint as an API
// Gateway V2 Lambda proxy integration.
type Handler struct {
	Agent   ops.VerificationAgent
	Limiter ratelimit.Limiter
	Log     *log.Logger

	// Now is a test seam; HandleEvent falls back to time.Now.
	Now func() time.Time
}

// responsePayload is the JSON body of every non-empty response.
type responsePayload struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// The form is served from a different origin than the API, so every
// response, including errors, carries the CORS headers.
func corsHeaders() map[string]string {
	return map[string]string{
		"Access-Control-Allow-Origin":      "*",
		"Access-Control-Allow-Credentials": "true",
		"Access-Control-Allow-Methods":     "POST, OPTIONS",
		"Access-Control-Allow-Headers":     "Content-Type",
	}
}

func (h *Handler) HandleEvent(
	ctx context.Context, req *events.APIGatewayV2HTTPRequest,
) *events.APIGatewayV2HTTPResponse {
	res := h.safelyHandleRequest(ctx, req)
	logApiResponse(h.Log, req, res)
	return res
}

// safelyHandleRequest turns a panic anywhere below into a generic 500 so the
// Lambda runtime never sees an unhandled error, which would drop the CORS
// headers from the response.
func (h *Handler) safelyHandleRequest(
	ctx context.Context, req *events.APIGatewayV2HTTPRequest,
) (res *events.APIGatewayV2HTTPResponse) {
	defer func() {
		if r := recover(); r != nil {
			h.Log.Printf("%s: ERROR recovered from panic: %v",
				req.RequestContext.RequestID, r)
			res = errorResponse(
				http.StatusInternalServerError, "Internal server error",
			)
		}
	}()
	return h.handleRequest(ctx, req)
}

func (h *Handler) handleRequest(
	ctx context.Context, req *events.APIGatewayV2HTTPRequest,
) *events.APIGatewayV2HTTPResponse {
	switch req.RequestContext.HTTP.Method {
	case http.MethodOptions:
		return &events.APIGatewayV2HTTPResponse{
			StatusCode: http.StatusOK, Headers: corsHeaders(),
		}
	case http.MethodPost:
	default:
		return errorResponse(
			http.StatusMethodNotAllowed, "Method not allowed",
		)
	}

	sub, err := parseSubmission(req)
	if err != nil {
		h.Log.Printf("%s: failed to parse request body: %s",
			req.RequestContext.RequestID, err)
		return errorResponse(http.StatusBadRequest, "Invalid request body")
	} else if !sub.HasRequiredFields() {
		return errorResponse(http.StatusBadRequest, "Missing required fields")
	} else if !form.IsValidEmail(sub.Email) {
		return errorResponse(http.StatusBadRequest, "Invalid email address")
	}

	clientAddr := ClientIP(req)
	if res := h.checkRateLimit(ctx, req, clientAddr); res != nil {
		return res
	}

	if err := h.Agent.Process(ctx, sub, clientAddr); err != nil {
		h.Log.Printf("%s: ERROR processing submission: %s",
			req.RequestContext.RequestID, err)
		return errorResponse(
			http.StatusInternalServerError, "Internal server error",
		)
	}
	return successResponse("Verification submitted successfully")
}

// checkRateLimit returns a 429 response when the client is throttled, nil
// when the request may proceed. A limiter infrastructure failure is logged
// and the request proceeds.
func (h *Handler) checkRateLimit(
	ctx context.Context,
	req *events.APIGatewayV2HTTPRequest,
	clientAddr string,
) *events.APIGatewayV2HTTPResponse {
	now := time.Now()
	if h.Now != nil {
		now = h.Now()
	}

	decision, err := h.Limiter.CheckAndRecord(ctx, clientAddr, now)
	if err != nil {
		h.Log.Printf("%s: ERROR checking rate limit for %s: %s",
			req.RequestContext.RequestID, clientAddr, err)
		return nil
	}
	if decision.Allowed {
		return nil
	}
	return errorResponse(http.StatusTooManyRequests, fmt.Sprintf(
		"Please wait %d minute(s) before submitting again",
		decision.RetryAfterMinutes(),
	))
}

func parseSubmission(
	req *events.APIGatewayV2HTTPRequest,
) (*form.Submission, error) {
	body := req.Body

	// Prod API Gateway base64 encodes POST bodies; `sam local` doesn't.
	if req.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(body)
		if err != nil {
			return nil, fmt.Errorf("failed to base64 decode body: %s", err)
		}
		body = string(decoded)
	}

	sub := &form.Submission{}
	if err := json.Unmarshal([]byte(body), sub); err != nil {
		return nil, fmt.Errorf("failed to parse submission JSON: %s", err)
	}
	return sub, nil
}

// ClientIP picks the client address used as the rate limit key: the first
// x-forwarded-for entry, then x-real-ip, then the connection source address.
//
// Payload format version 2.0 lowercases all header names.
func ClientIP(req *events.APIGatewayV2HTTPRequest) string {
	if fwd := req.Headers["x-forwarded-for"]; fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		if addr := strings.TrimSpace(first); addr != "" {
			return addr
		}
	}
	if addr := req.Headers["x-real-ip"]; addr != "" {
		return addr
	}
	return req.RequestContext.HTTP.SourceIP
}

func jsonResponse(
	statusCode int, payload *responsePayload,
) *events.APIGatewayV2HTTPResponse {
	headers := corsHeaders()
	headers["Content-Type"] = "application/json"

	// responsePayload can't fail to marshal.
	body, _ := json.Marshal(payload)
	return &events.APIGatewayV2HTTPResponse{
		StatusCode: statusCode,
		Headers:    headers,
		Body:       string(body),
	}
}

func successResponse(message string) *events.APIGatewayV2HTTPResponse {
	return jsonResponse(
		http.StatusOK, &responsePayload{Success: true, Message: message},
	)
}

func errorResponse(statusCode int, message string) *events.APIGatewayV2HTTPResponse {
	return jsonResponse(statusCode, &responsePayload{Error: message})
}

func logApiResponse(
	log *log.Logger,
	req *events.APIGatewayV2HTTPRequest,
	res *events.APIGatewayV2HTTPResponse,
) {
	desc := req.RequestContext.HTTP
	log.Printf(`%s: %s "%s %s %s" %d`,
		req.RequestContext.RequestID,
		desc.SourceIP, desc.Method, desc.Path, desc.Protocol, res.StatusCode,
	)
}
