package pagination

import (
	"math"
	"net/url"
	"strconv"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Parse", func() {
	It("applies defaults when parameters are absent", func() {
		req := Parse("", "", "", "", "")
		Expect(req).To(Equal(Request{Page: 1, PageSize: 10, SortDirection: Asc}))
		Expect(req.Offset()).To(Equal(0))
	})

	DescribeTable("clamps the page size into [1,100]",
		func(raw string, want int) {
			Expect(Parse("1", raw, "", "", "").PageSize).To(Equal(want))
		},
		Entry("zero", "0", 1),
		Entry("negative", "-5", 1),
		Entry("over the maximum", "1000", 100),
		Entry("at the maximum", "100", 100),
		Entry("in range", "25", 25),
		Entry("not a number", "ten", 10),
	)

	DescribeTable("clamps the page into [1,MaxPage]",
		func(raw string, want int) {
			req := Parse(raw, "10", "", "", "")
			Expect(req.Page).To(Equal(want))
			Expect(req.Offset()).To(Equal((want - 1) * 10))
			Expect(req.Offset()).To(BeNumerically(">=", 0))
		},
		Entry("zero", "0", 1),
		Entry("negative", "-2", 1),
		Entry("not a number", "x", 1),
		Entry("valid", "4", 4),
		Entry("at the maximum", strconv.Itoa(MaxPage), MaxPage),
		Entry("max int64", "9223372036854775807", MaxPage),
		Entry("beyond int64", "99999999999999999999", 1),
	)

	DescribeTable("treats anything but desc as asc",
		func(raw string, want Direction) {
			Expect(Parse("", "", "", raw, "").SortDirection).To(Equal(want))
		},
		Entry("desc", "desc", Desc),
		Entry("asc", "asc", Asc),
		Entry("uppercase", "DESC", Asc),
		Entry("empty", "", Asc),
		Entry("garbage", "down", Asc),
	)

	It("reads the query string", func() {
		q := url.Values{}
		q.Set("page", "3")
		q.Set("pageSize", "20")
		q.Set("sortBy", "createdAt")
		q.Set("sortDirection", "desc")
		q.Set("search", " maria ")

		req := FromQuery(q)
		Expect(req).To(Equal(Request{Page: 3, PageSize: 20, SortBy: "createdAt", SortDirection: Desc, Search: "maria"}))
		Expect(req.Offset()).To(Equal(40))
		Expect(req.Limit()).To(Equal(20))
		Expect(req.Descending()).To(BeTrue())
	})
})

var _ = Describe("offset", func() {
	It("stays non-negative for the largest normalized request", func() {
		req := Request{Page: math.MaxInt, PageSize: math.MaxInt}.Normalize()
		Expect(req.Offset()).To(Equal((MaxPage - 1) * MaxPageSize))
		Expect(req.Offset()).To(BeNumerically("<=", math.MaxInt32))
	})

	It("equals (page-1)*pageSize for every valid input", func() {
		for page := 1; page <= 20; page++ {
			for size := 1; size <= MaxPageSize; size++ {
				req := Request{Page: page, PageSize: size}
				Expect(req.Offset()).To(Equal((page - 1) * size))
			}
		}
	})
})

var _ = Describe("NewResponse", func() {
	It("derives totalPages from total", func() {
		for total := int64(0); total <= 250; total++ {
			for _, size := range []int{1, 5, 10, 33, 100} {
				want := int(total) / size
				if int(total)%size != 0 {
					want++
				}
				Expect(TotalPages(total, size)).To(Equal(want))
			}
		}
	})

	It("describes the second page of twelve rows", func() {
		req := Parse("2", "5", "id", "asc", "")
		resp := NewResponse([]int{6, 7, 8, 9, 10}, 12, req)
		Expect(resp.Data).To(Equal([]int{6, 7, 8, 9, 10}))
		Expect(resp.Total).To(BeEquivalentTo(12))
		Expect(resp.Page).To(Equal(2))
		Expect(resp.PageSize).To(Equal(5))
		Expect(resp.TotalPages).To(Equal(3))
	})

	It("never carries nil data", func() {
		resp := NewResponse[string](nil, 0, Parse("", "", "", "", ""))
		Expect(resp.Data).NotTo(BeNil())
		Expect(resp.Data).To(BeEmpty())
		Expect(resp.TotalPages).To(Equal(0))
	})
})
