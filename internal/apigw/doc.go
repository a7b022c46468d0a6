// Package apigw runs an http.Handler behind AWS API Gateway proxy
// integrations, translating proxy events into requests and recorded
// responses back into proxy responses.
package apigw
