package receipt

import (
	ginkgo "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = ginkgo.Describe("Categorizer", func() {
	var categorizer *Categorizer

	ginkgo.BeforeEach(func() {
		categorizer = NewCategorizer()
	})

	ginkgo.Describe("Categorize", func() {
		ginkgo.When("a name passes a main category's keyword gate", func() {
			ginkgo.It("should pick the first matching subcategory", func() {
				items := []*LineItem{{Name: "Starbucks Latte", Price: 4.50}}
				groups := categorizer.Categorize(items)
				Expect(groups).To(HaveLen(1))
				Expect(groups[0].Path).To(Equal("Dining > Coffee Shop"))
			})

			ginkgo.It("should use the main category alone when no subcategory matches", func() {
				items := []*LineItem{{Name: "Whole Foods Quinoa", Price: 6.99}}
				groups := categorizer.Categorize(items)
				Expect(groups[0].Path).To(Equal("Groceries"))
			})
		})

		ginkgo.When("a name matches only subcategory keywords", func() {
			ginkgo.It("should match through the subcategory fallback", func() {
				items := []*LineItem{{Name: "Milk 2", Price: 3.99}}
				groups := categorizer.Categorize(items)
				Expect(groups[0].Path).To(Equal("Groceries > Dairy"))
			})

			// "coffee" is a Groceries > Beverages keyword and Groceries is
			// evaluated before Dining, so the fallback wins over Dining's
			// "starbucks" main keyword. Iteration order is the tie-break.
			ginkgo.It("should let an earlier category's subcategory beat a later category's main keywords", func() {
				items := []*LineItem{{Name: "Starbucks Coffee", Price: 4.50}}
				groups := categorizer.Categorize(items)
				Expect(groups[0].Path).To(Equal("Groceries > Beverages"))
			})
		})

		ginkgo.When("no keyword matches", func() {
			ginkgo.It("should fall back to Other", func() {
				items := []*LineItem{{Name: "Mystery Gadget", Price: 9.99}}
				groups := categorizer.Categorize(items)
				Expect(groups[0].Path).To(Equal(FallbackCategory))
			})
		})

		ginkgo.When("categorizing a mixed sequence", func() {
			var (
				items  []*LineItem
				groups Groups
			)

			ginkgo.BeforeEach(func() {
				items = []*LineItem{
					{Name: "Uber Ride", Price: 12.00},
					{Name: "Milk 2", Price: 3.99},
					{Name: "Cheese Block", Price: 5.49},
					{Name: "Mystery Gadget", Price: 9.99},
				}
			})

			ginkgo.JustBeforeEach(func() {
				groups = categorizer.Categorize(items)
			})

			ginkgo.It("should keep paths in first-seen order", func() {
				paths := make([]string, 0, len(groups))
				for _, g := range groups {
					paths = append(paths, g.Path)
				}
				Expect(paths).To(Equal([]string{
					"Transportation > Rideshare",
					"Groceries > Dairy",
					"Other",
				}))
			})

			ginkgo.It("should keep items in processing order within a group", func() {
				Expect(groups[1].Items).To(HaveLen(2))
				Expect(groups[1].Items[0].Name).To(Equal("Milk 2"))
				Expect(groups[1].Items[1].Name).To(Equal("Cheese Block"))
			})

			ginkgo.It("should set each item's category in place", func() {
				Expect(items[0].Category).To(Equal("Transportation > Rideshare"))
				Expect(items[3].Category).To(Equal("Other"))
			})

			ginkgo.It("should leave no item without a category", func() {
				for _, item := range items {
					Expect(item.Category).NotTo(BeEmpty())
					Expect(item.Category).NotTo(Equal(Uncategorized))
				}
			})

			ginkgo.It("should be idempotent", func() {
				first := make([]string, len(items))
				for i, item := range items {
					first[i] = item.Category
				}
				categorizer.Categorize(items)
				for i, item := range items {
					Expect(item.Category).To(Equal(first[i]))
				}
			})
		})

		ginkgo.When("there are no items", func() {
			ginkgo.It("should return empty groups", func() {
				Expect(categorizer.Categorize(nil)).To(BeEmpty())
			})
		})
	})

	ginkgo.Describe("CategoryTotals", func() {
		ginkgo.It("should sum prices per path in group order", func() {
			items := []*LineItem{
				{Name: "Starbucks Latte", Price: 4.50},
				{Name: "Uber Ride", Price: 12.00},
			}
			groups := categorizer.Categorize(items)
			totals := categorizer.CategoryTotals(groups)
			Expect(totals).To(Equal([]CategoryTotal{
				{Path: "Dining > Coffee Shop", Amount: 4.50},
				{Path: "Transportation > Rideshare", Amount: 12.00},
			}))
		})

		ginkgo.It("should conserve the grand total across categorization", func() {
			items := []*LineItem{
				{Name: "Milk 2", Price: 3.99},
				{Name: "Cheese Block", Price: 5.49},
				{Name: "Mystery Gadget", Price: 9.99},
				{Name: "Uber Ride", Price: 12.00},
			}
			var itemSum float64
			for _, item := range items {
				itemSum += item.Price
			}

			totals := categorizer.CategoryTotals(categorizer.Categorize(items))
			var totalSum float64
			for _, t := range totals {
				totalSum += t.Amount
			}
			Expect(totalSum).To(BeNumerically("~", itemSum, 1e-9))
		})
	})
})
