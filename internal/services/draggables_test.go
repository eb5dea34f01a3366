package services_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/dbnav/object-browser/internal/models"
	"github.com/dbnav/object-browser/internal/services"
	"github.com/dbnav/object-browser/internal/tree"
	"github.com/dbnav/object-browser/pkg/event"
	"github.com/dbnav/object-browser/test"
)

var _ = Describe("Browser drag payloads", func() {
	var (
		nav *services.Navigator
		t   *tree.Tree
	)

	add := func(parent, id, typ, label string) *tree.Node {
		n, err := t.Store().AddNode(parent, parent+"/"+id, models.RawRow{"id": id, "_type": typ, "_id": 1, "label": label})
		Expect(err).NotTo(HaveOccurred())
		return n
	}

	BeforeEach(func() {
		nav = services.NewNavigatorWithFetchers(map[models.TreeName]services.TreeSource{
			models.TreeBrowser: {RootPath: "/browser", Fetcher: test.NewMockFetcher()},
		}, event.NewBus(), tree.WithNotifier(test.NewMockNotifier()))

		var err error
		t, err = nav.Tree("browser")
		Expect(err).NotTo(HaveOccurred())

		add("/browser", "srv1", "server", "S1")
		add("/browser/srv1", "db1", "database", "app")
		add("/browser/srv1/db1", "public", "schema", "public")
		add("/browser/srv1/db1", "sales", "schema", "Sales")
	})

	AfterEach(func() {
		nav.Close()
	})

	DescribeTable("dropped text",
		func(parent, typ, label, text string, cursor int) {
			n := add(parent, "obj", typ, label)

			payload, ok := t.DragPayload(n)

			Expect(ok).To(BeTrue())
			Expect(payload.Text).To(Equal(text))
			Expect(payload.Cur.From).To(Equal(cursor))
			Expect(payload.Cur.To).To(Equal(cursor))
		},
		Entry("plain schema name", "/browser/srv1/db1", "schema", "inventory", "inventory", 9),
		Entry("quoted database name", "/browser/srv1", "database", "My DB", `"My DB"`, 7),
		Entry("table qualified by its schema", "/browser/srv1/db1/public", "table", "orders", "public.orders", 13),
		Entry("quoted schema and table", "/browser/srv1/db1/sales", "table", "Order Lines", `"Sales"."Order Lines"`, 21),
		Entry("view qualified by its schema", "/browser/srv1/db1/public", "view", "v_orders", "public.v_orders", 15),
		Entry("table without a schema", "/browser/srv1/db1", "table", "orders", "orders", 6),
		Entry("function with the cursor inside the parentheses", "/browser/srv1/db1/public", "function", "calc", "public.calc()", 12),
		Entry("embedded quotes are doubled", "/browser/srv1/db1", "role", `a"b`, `"a""b"`, 6),
	)

	It("should not drag a server", func() {
		_, ok := t.DragPayload(t.FindNode("/browser/srv1"))

		Expect(ok).To(BeFalse())
	})
})
