// controllers/payload.go
package controllers

import (
	"aiinvoice-backend/services"
	"aiinvoice-backend/storage"

	"github.com/gin-gonic/gin"
)

// callerID reads the opaque owner identity set by the auth middleware.
func callerID(c *gin.Context) (string, bool) {
	v, exists := c.Get("userId")
	if !exists {
		return "", false
	}
	s, ok := v.(string)
	return s, ok && s != ""
}

// requestPayload flattens the request body into the untyped bag the
// normalizer works on. Multipart forms contribute their value fields; JSON
// bodies are decoded as-is. A malformed body degrades to an empty bag, it
// never fails the request.
func requestPayload(c *gin.Context) services.Payload {
	bag := services.Payload{}
	if c.ContentType() == "multipart/form-data" {
		form, err := c.MultipartForm()
		if err != nil || form == nil {
			return bag
		}
		for key, vals := range form.Value {
			if len(vals) > 0 {
				bag[key] = vals[0]
			}
		}
		return bag
	}
	if c.Request.Body != nil && c.Request.ContentLength != 0 {
		var decoded map[string]interface{}
		if err := c.ShouldBindJSON(&decoded); err == nil {
			bag = decoded
		}
	}
	return bag
}

// uploadedFiles resolves any multipart file uploads into attachment URLs.
func uploadedFiles(c *gin.Context, resolver storage.Resolver) map[string]string {
	if c.ContentType() != "multipart/form-data" {
		return map[string]string{}
	}
	form, err := c.MultipartForm()
	if err != nil || form == nil {
		return map[string]string{}
	}
	return resolver.Resolve(form)
}
