package llm_test

import (
	"encoding/json"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/glimpse/pkg/llm"
)

var _ = Describe("Messages", func() {
	It("keeps parts in the order given", func() {
		msg := llm.NewUserMessage(
			llm.TextPart("Extract all items and prices from this receipt."),
			llm.ImagePart("data:image/jpeg;base64,AQIDBAUGBwgJCg=="),
		)

		Expect(msg.Role).To(Equal(llm.RoleUser))
		Expect(msg.Parts).To(HaveLen(2))
		Expect(msg.Parts[0].Type).To(Equal(llm.PartTypeText))
		Expect(msg.Parts[1].Type).To(Equal(llm.PartTypeImageURL))
		Expect(msg.Parts[1].ImageURL.URL).To(HavePrefix("data:image/jpeg;base64,"))
	})

	It("serializes image parts in the chat completion shape", func() {
		data, err := json.Marshal(llm.ImagePart("data:image/png;base64,AAAA"))
		Expect(err).NotTo(HaveOccurred())
		Expect(data).To(MatchJSON(`{"type":"image_url","image_url":{"url":"data:image/png;base64,AAAA"}}`))
	})
})

var _ = Describe("ChatResponse", func() {
	Describe("FirstContent", func() {
		It("returns the first choice content only", func() {
			resp := &llm.ChatResponse{
				Choices: []llm.Choice{
					{Index: 0, Message: llm.Message{Role: llm.RoleAssistant, Content: "Coffee - $4.50"}},
					{Index: 1, Message: llm.Message{Role: llm.RoleAssistant, Content: "Tea - $3.00"}},
				},
			}

			content, err := resp.FirstContent()
			Expect(err).NotTo(HaveOccurred())
			Expect(content).To(Equal("Coffee - $4.50"))
		})

		It("fails when there are no choices", func() {
			_, err := (&llm.ChatResponse{}).FirstContent()
			Expect(err).To(MatchError(llm.ErrNoChoices))
		})

		It("fails on a nil response", func() {
			var resp *llm.ChatResponse
			_, err := resp.FirstContent()
			Expect(err).To(MatchError(llm.ErrNoChoices))
		})
	})
})
