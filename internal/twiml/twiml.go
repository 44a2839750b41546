// Package twiml renders the messaging provider's XML reply envelope.
package twiml

import "encoding/xml"

// ContentType is the response content type for TwiML payloads.
const ContentType = "application/xml"

// response is the minimal TwiML document: one Message verb inside Response.
type response struct {
	XMLName xml.Name `xml:"Response"`
	Message string   `xml:"Message"`
}

// Reply wraps text in a TwiML envelope. Markup characters in the reply,
// common in code snippets, are escaped by the encoder.
func Reply(text string) ([]byte, error) {
	body, err := xml.Marshal(response{Message: text})
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), body...), nil
}
