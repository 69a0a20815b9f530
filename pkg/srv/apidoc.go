/*
 Licensed under the Apache License, Version 2.0 (the "License");
 you may not use this file except in compliance with the License.
 You may obtain a copy of the License at

     https://www.apache.org/licenses/LICENSE-2.0

 Unless required by applicable law or agreed to in writing, software
 distributed under the License is distributed on an "AS IS" BASIS,
 WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 See the License for the specific language governing permissions and
 limitations under the License.
*/

package srv

import (
	"encoding/json"

	"github.com/go-openapi/loads"
)

// apiSpec is the swagger document of the control API, served at
// /api/swagger.json.
const apiSpec = `{
  "swagger": "2.0",
  "info": {
    "title": "go-adcstat control API",
    "version": "1.0"
  },
  "basePath": "/api",
  "produces": ["application/json"],
  "paths": {
    "/channels": {
      "get": {
        "summary": "List configured channels",
        "responses": {
          "200": {"description": "configured channels"}
        }
      }
    },
    "/read/{channel}": {
      "get": {
        "summary": "Run a discrete read and return its statistics",
        "parameters": [
          {"name": "channel", "in": "path", "required": true, "type": "string"},
          {"name": "count", "in": "query", "type": "integer", "default": 64},
          {"name": "delay_ms", "in": "query", "type": "integer", "default": 0}
        ],
        "responses": {
          "200": {"description": "read statistics in millivolts"},
          "400": {"description": "invalid parameters"},
          "404": {"description": "channel not found"},
          "502": {"description": "conversion failure"}
        }
      }
    },
    "/sample/{channel}": {
      "get": {
        "summary": "Sample the continuous stream for a duration",
        "parameters": [
          {"name": "channel", "in": "path", "required": true, "type": "string"},
          {"name": "duration_ms", "in": "query", "type": "integer", "default": 1000}
        ],
        "responses": {
          "200": {"description": "calibrated samples, empty when the stream could not be started"},
          "400": {"description": "invalid parameters"},
          "404": {"description": "channel not found"}
        }
      }
    },
    "/results/{channel}": {
      "get": {
        "summary": "Persisted read history of a channel",
        "parameters": [
          {"name": "channel", "in": "path", "required": true, "type": "string"}
        ],
        "responses": {
          "200": {"description": "persisted records in chronological order"},
          "404": {"description": "channel not found"}
        }
      }
    }
  }
}`

// APISpec loads the embedded swagger document.
func APISpec() (*loads.Document, error) {
	return loads.Analyzed(json.RawMessage(apiSpec), "2.0")
}
