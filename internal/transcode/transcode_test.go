package transcode

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("ToCamel", func() {
	DescribeTable("rewrites storage keys",
		func(in, want string) {
			Expect(ToCamel(in)).To(Equal(want))
		},
		Entry("single word", "id", "id"),
		Entry("two words", "created_at", "createdAt"),
		Entry("three words", "kinship_type_id", "kinshipTypeId"),
		Entry("digit segment keeps its underscore", "address_2", "address_2"),
	)

	DescribeTable("copies malformed keys through",
		func(in string) {
			Expect(ToCamel(in)).To(Equal(in))
		},
		Entry("empty", ""),
		Entry("leading underscore", "_hidden"),
		Entry("trailing underscore", "name_"),
		Entry("double underscore", "a__b"),
		Entry("already camel", "unitId"),
		Entry("punctuation", "e-mail"),
	)
})

var _ = Describe("ToSnake", func() {
	DescribeTable("rewrites API keys",
		func(in, want string) {
			Expect(ToSnake(in)).To(Equal(want))
		},
		Entry("single word", "name", "name"),
		Entry("two words", "documentNumber", "document_number"),
		Entry("leading capital", "Name", "name"),
		Entry("already snake", "unit_id", "unit_id"),
	)

	It("copies keys with unsupported characters through", func() {
		Expect(ToSnake("")).To(Equal(""))
		Expect(ToSnake("e-mail")).To(Equal("e-mail"))
		Expect(ToSnake("naïve")).To(Equal("naïve"))
	})
})

var _ = Describe("record rewriting", func() {
	storage := map[string]any{
		"id":                  int64(7),
		"document_number":     "123",
		"kinship_type_id":     int64(2),
		"a_b_c":               true,
		"address_2":           "Apt 4",
		"created_at":          time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		"member_person_id":    nil,
		"registration_number": "R-1",
	}

	It("leaves values untouched", func() {
		camel := KeysToCamel(storage)
		Expect(camel).To(HaveKeyWithValue("documentNumber", "123"))
		Expect(camel).To(HaveKeyWithValue("kinshipTypeId", int64(2)))
		Expect(camel).To(HaveKeyWithValue("memberPersonId", BeNil()))
		Expect(camel).To(HaveLen(len(storage)))
	})

	It("round-trips the key set", func() {
		camel := KeysToCamel(storage)
		back := KeysToSnake(camel)
		Expect(keys(back)).To(ConsistOf(keys(storage)))
		Expect(keys(KeysToCamel(back))).To(ConsistOf(keys(camel)))
	})

	It("returns nil for a nil record", func() {
		Expect(KeysToCamel(nil)).To(BeNil())
		Expect(KeysToSnake(nil)).To(BeNil())
	})
})

var _ = Describe("StructToMap", func() {
	type payload struct {
		Name      string  `json:"name"`
		UnitID    *int64  `json:"unitId"`
		City      *string `json:"city,omitempty"`
		Secret    string  `json:"-"`
		NoTag     int
		unexported string
	}

	It("uses json names and skips nil pointers", func() {
		unit := int64(3)
		out := StructToMap(payload{Name: "HQ", UnitID: &unit, Secret: "x", NoTag: 4, unexported: "y"})
		Expect(out).To(Equal(map[string]any{
			"name":   "HQ",
			"unitId": int64(3),
			"NoTag":  4,
		}))
	})

	It("accepts pointers and ignores non-structs", func() {
		Expect(StructToMap(&payload{Name: "A"})).To(HaveKeyWithValue("name", "A"))
		Expect(StructToMap((*payload)(nil))).To(BeEmpty())
		Expect(StructToMap(42)).To(BeEmpty())
	})
})

func keys(m map[string]any) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
