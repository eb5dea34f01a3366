package tree_test

import (
	"context"
	"errors"
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/text/language"

	"github.com/dbnav/object-browser/internal/models"
	"github.com/dbnav/object-browser/internal/tree"
	srvErrors "github.com/dbnav/object-browser/pkg/errors"
	"github.com/dbnav/object-browser/pkg/scheduler"
	"github.com/dbnav/object-browser/test"
)

var _ = Describe("Store", func() {
	var (
		ctx      context.Context
		fetcher  *test.MockFetcher
		notifier *test.MockNotifier
		s        *tree.Store
	)

	BeforeEach(func() {
		ctx = context.Background()
		fetcher = test.NewMockFetcher()
		notifier = test.NewMockNotifier()
		s = tree.NewStore("/browser", fetcher, tree.WithNotifier(notifier))
	})

	Context("FindNode", func() {
		// Given a fresh store
		// When we look up the empty path or the root sentinel
		// Then both resolve to the root node
		It("should resolve empty path and sentinel to the root", func() {
			// Assert
			Expect(s.FindNode("")).To(BeIdenticalTo(s.Root()))
			Expect(s.FindNode("/browser")).To(BeIdenticalTo(s.Root()))
		})

		// Given nodes added at several depths
		// When we look up each of them by path
		// Then the exact same node is returned
		It("should return the inserted node by reference", func() {
			// Arrange
			srv, err := s.AddNode("/browser", "/browser/srv1", models.RawRow{"id": "srv1", "_type": "server", "inode": true})
			Expect(err).NotTo(HaveOccurred())
			db, err := s.AddNode("/browser/srv1", "/browser/srv1/db1", models.RawRow{"id": "db1", "_type": "database"})
			Expect(err).NotTo(HaveOccurred())

			// Assert
			Expect(s.FindNode("/browser/srv1")).To(BeIdenticalTo(srv))
			Expect(s.FindNode("/browser/srv1/db1")).To(BeIdenticalTo(db))
		})

		// Given a node srv1
		// When we look up unrelated paths, including one that only shares a string prefix
		// Then nil is returned
		It("should return nil for unknown paths", func() {
			// Arrange
			_, err := s.AddNode("/browser", "/browser/srv1", models.RawRow{"id": "srv1"})
			Expect(err).NotTo(HaveOccurred())

			// Assert
			Expect(s.FindNode("/elsewhere/srv1")).To(BeNil())
			Expect(s.FindNode("/browser/srv10")).To(BeNil())
			Expect(s.FindNode("/browser/srv1/db9")).To(BeNil())
		})
	})

	Context("AddNode", func() {
		// Given a parent with a child
		// When we add children at various depths
		// Then every path is the parent path followed by the child id
		It("should keep the path invariant", func() {
			// Arrange
			_, err := s.AddNode("/browser", "/browser/srv1", models.RawRow{"id": "srv1"})
			Expect(err).NotTo(HaveOccurred())
			_, err = s.AddNode("/browser/srv1", "/browser/srv1/db1", models.RawRow{"id": "db1"})
			Expect(err).NotTo(HaveOccurred())

			// Assert
			var walk func(n *tree.Node)
			walk = func(n *tree.Node) {
				for _, c := range n.Children() {
					Expect(c.Path()).To(Equal(n.Path() + "/" + c.ID()))
					Expect(c.Parent()).To(BeIdenticalTo(n))
					walk(c)
				}
			}
			walk(s.Root())
		})

		// Given a node already added
		// When the same path is added again with another row
		// Then no sibling is created and the existing node carries the new row
		It("should be idempotent on the same path", func() {
			// Arrange
			first, err := s.AddNode("/browser", "/browser/srv1", models.RawRow{"id": "srv1", "label": "Old"})
			Expect(err).NotTo(HaveOccurred())

			// Act
			second, err := s.AddNode("/browser", "/browser/srv1", models.RawRow{"id": "srv1", "label": "New"})

			// Assert
			Expect(err).NotTo(HaveOccurred())
			Expect(second).To(BeIdenticalTo(first))
			Expect(s.Root().Children()).To(HaveLen(1))
			data, ok := second.Data()
			Expect(ok).To(BeTrue())
			Expect(data.RawLabel).To(Equal("New"))
		})

		// Given a store without the parent path
		// When we add a node under it
		// Then a not found error is returned
		It("should fail when the parent does not exist", func() {
			// Act
			n, err := s.AddNode("/browser/missing", "/browser/missing/x", models.RawRow{"id": "x"})

			// Assert
			Expect(n).To(BeNil())
			Expect(srvErrors.IsResourceNotFoundError(err)).To(BeTrue())
		})

		// Given the root
		// When the new path is not a direct child of the parent
		// Then an invalid operation error is returned
		It("should reject a path outside the parent", func() {
			// Act
			_, err := s.AddNode("/browser", "/browser/a/b", models.RawRow{"id": "b"})

			// Assert
			Expect(srvErrors.IsInvalidOperationError(err)).To(BeTrue())
			Expect(s.Root().Children()).To(BeEmpty())
		})

		// Given a raw row with markup in its label
		// When the row is added
		// Then the stored label is escaped and the caller's row is untouched
		It("should normalize into a copy", func() {
			// Arrange
			raw := models.RawRow{"id": "t1", "_type": "table", "label": "<b>orders</b>", "inode": true, "owner": "admin"}

			// Act
			n, err := s.AddNode("/browser", "/browser/t1", raw)

			// Assert
			Expect(err).NotTo(HaveOccurred())
			data, _ := n.Data()
			Expect(data.Label).To(Equal("&lt;b&gt;orders&lt;/b&gt;"))
			Expect(data.RawLabel).To(Equal("<b>orders</b>"))
			Expect(data.Kind).To(Equal(models.NodeKindDirectory))
			Expect(data.Attributes).To(HaveKeyWithValue("owner", "admin"))
			Expect(raw).To(HaveLen(5))
			Expect(raw["label"]).To(Equal("<b>orders</b>"))

			// mutating the returned copy does not leak into the store
			data.Attributes["owner"] = "someone"
			again, _ := n.Data()
			Expect(again.Attributes).To(HaveKeyWithValue("owner", "admin"))
		})

		// Given a row without a label
		// When it is added
		// Then the id is used as the label
		It("should fall back to the id for the label", func() {
			n, err := s.AddNode("/browser", "/browser/x1", models.RawRow{"id": "x1"})
			Expect(err).NotTo(HaveOccurred())

			data, _ := n.Data()
			Expect(data.RawLabel).To(Equal("x1"))
		})

		// Given a collection type in the registry
		// When a row of that type is added
		// Then it is tagged as a collection
		It("should tag collections", func() {
			n, err := s.AddNode("/browser", "/browser/coll-database", models.RawRow{"id": "coll-database", "_type": "coll-database", "inode": true})
			Expect(err).NotTo(HaveOccurred())

			data, _ := n.Data()
			Expect(data.IsCollection).To(BeTrue())
		})
	})

	Context("Data", func() {
		// Given the root, which was never given a row, and a node added with a nil row
		// When we read their data
		// Then the root reports no data at all and the other an explicit nil
		It("should tell an unloaded node from an empty one", func() {
			// Arrange
			empty, err := s.AddNode("/browser", "/browser/empty", nil)
			Expect(err).NotTo(HaveOccurred())

			// Act
			rootData, rootOK := s.Root().Data()
			emptyData, emptyOK := empty.Data()

			// Assert
			Expect(rootOK).To(BeFalse())
			Expect(rootData).To(BeNil())
			Expect(emptyOK).To(BeTrue())
			Expect(emptyData).To(BeNil())
		})
	})

	Context("UpdateNode", func() {
		// Given an existing node
		// When we update it
		// Then the label changes and true is reported
		It("should replace the row of an existing node", func() {
			// Arrange
			n, err := s.AddNode("/browser", "/browser/srv1", models.RawRow{"id": "srv1", "label": "S1"})
			Expect(err).NotTo(HaveOccurred())

			// Act
			ok := s.UpdateNode("/browser/srv1", models.RawRow{"id": "srv1", "label": "Renamed"})

			// Assert
			Expect(ok).To(BeTrue())
			data, _ := n.Data()
			Expect(data.RawLabel).To(Equal("Renamed"))
		})

		It("should report false for an unknown node", func() {
			Expect(s.UpdateNode("/browser/nope", models.RawRow{"id": "nope"})).To(BeFalse())
		})
	})

	Context("RemoveNode", func() {
		// Given a node with a child
		// When we remove it
		// Then it is detached, its children are dropped and lookups fail
		It("should detach the node and clear its children", func() {
			// Arrange
			srv, err := s.AddNode("/browser", "/browser/srv1", models.RawRow{"id": "srv1"})
			Expect(err).NotTo(HaveOccurred())
			_, err = s.AddNode("/browser/srv1", "/browser/srv1/db1", models.RawRow{"id": "db1"})
			Expect(err).NotTo(HaveOccurred())

			// Act
			ok := s.RemoveNode("/browser/srv1")

			// Assert
			Expect(ok).To(BeTrue())
			Expect(s.Root().Children()).To(BeEmpty())
			Expect(srv.HasParent()).To(BeFalse())
			Expect(srv.Children()).To(BeEmpty())
			Expect(s.FindNode("/browser/srv1/db1")).To(BeNil())
		})

		It("should report false for the root and unknown nodes", func() {
			Expect(s.RemoveNode("/browser")).To(BeFalse())
			Expect(s.RemoveNode("/browser/nope")).To(BeFalse())
		})
	})

	Context("ReadNode", func() {
		// Given a connected server and a backend answering its children
		// When we read the server
		// Then the database is added under it with its label
		It("should load children from the backend", func() {
			// Arrange
			_, err := s.AddNode("/browser", "/browser/srv1", models.RawRow{"id": "srv1", "_type": "server", "label": "S1", "connected": true})
			Expect(err).NotTo(HaveOccurred())
			fetcher.SetChildren("server/children/srv1", models.RawRow{"id": "db1", "_type": "database", "label": "DB1"})

			// Act
			children := s.ReadNode(ctx, "/browser/srv1")

			// Assert
			Expect(children).To(HaveLen(1))
			db := s.FindNode("/browser/srv1/db1")
			Expect(db).NotTo(BeNil())
			data, ok := db.Data()
			Expect(ok).To(BeTrue())
			Expect(data.RawLabel).To(Equal("DB1"))
		})

		// Given a node whose children are already known
		// When we read it again
		// Then no further request is made
		It("should answer from memory once loaded", func() {
			// Arrange
			fetcher.SetChildren("nodes/", models.RawRow{"id": "sg1", "_type": "server_group", "_id": 1, "inode": true})
			Expect(s.ReadNode(ctx, "/browser")).To(HaveLen(1))

			// Act
			children := s.ReadNode(ctx, "/browser")

			// Assert
			Expect(children).To(HaveLen(1))
			Expect(fetcher.Requests("nodes/")).To(Equal(1))
		})

		// Given a server reported as not connected
		// When we read it
		// Then nothing is returned and no request is made
		It("should not fetch children of a disconnected server", func() {
			// Arrange
			_, err := s.AddNode("/browser", "/browser/srv1", models.RawRow{"id": "srv1", "_type": "server", "connected": false, "inode": true})
			Expect(err).NotTo(HaveOccurred())

			// Act
			children := s.ReadNode(ctx, "/browser/srv1")

			// Assert
			Expect(children).To(BeEmpty())
			Expect(fetcher.TotalRequests()).To(BeZero())
			Expect(notifier.ErrorCount()).To(BeZero())
		})

		// Given a backend failing for a node
		// When we read it
		// Then the failure is notified and an empty list is returned
		It("should report load failures to the notifier", func() {
			// Arrange
			_, err := s.AddNode("/browser", "/browser/srv1", models.RawRow{"id": "srv1", "_type": "server", "connected": true})
			Expect(err).NotTo(HaveOccurred())
			fetcher.Fail("server/children/srv1", srvErrors.NewLoadFailureError("server/children/srv1", 500, errors.New("boom")))

			// Act
			children := s.ReadNode(ctx, "/browser/srv1")

			// Assert
			Expect(children).To(BeEmpty())
			Expect(notifier.ErrorCount()).To(Equal(1))
			Expect(notifier.Errors[0]).To(ContainSubstring("/browser/srv1"))
		})

		It("should return an empty list for an unknown path", func() {
			Expect(s.ReadNode(ctx, "/browser/nope")).To(BeEmpty())
			Expect(fetcher.TotalRequests()).To(BeZero())
		})

		// Given a row without an id in the backend answer
		// When the children are loaded
		// Then the row is skipped
		It("should skip rows without an id", func() {
			// Arrange
			fetcher.SetChildren("nodes/",
				models.RawRow{"id": "sg1", "_type": "server_group"},
				models.RawRow{"_type": "server_group", "label": "broken"},
			)

			// Act
			children := s.ReadNode(ctx, "/browser")

			// Assert
			Expect(children).To(HaveLen(1))
			Expect(children[0].ID()).To(Equal("sg1"))
		})

		// Given a backend answering with numeric ids
		// When the children are loaded
		// Then the ids become path segments
		It("should accept numeric ids", func() {
			fetcher.SetChildren("nodes/", models.RawRow{"id": 7, "_type": "server_group"})

			children := s.ReadNode(ctx, "/browser")

			Expect(children).To(HaveLen(1))
			Expect(children[0].Path()).To(Equal("/browser/7"))
		})

		// Given a canceled context and a held backend
		// When we read
		// Then the read is abandoned with an empty list
		It("should give up waiting when the context is done", func() {
			// Arrange
			release := fetcher.Hold()
			defer release()
			cctx, cancel := context.WithCancel(ctx)
			fetcher.SetChildren("nodes/", models.RawRow{"id": "sg1"})

			done := make(chan []*tree.Node, 1)
			go func() {
				done <- s.ReadNode(cctx, "/browser")
			}()
			Eventually(fetcher.Started()).Should(Receive(Equal("nodes/")))

			// Act
			cancel()

			// Assert
			Eventually(done).Should(Receive(BeEmpty()))
		})
	})

	Context("children urls", func() {
		BeforeEach(func() {
			add := func(parent, id string, raw models.RawRow) {
				raw["id"] = id
				_, err := s.AddNode(parent, parent+"/"+id, raw)
				Expect(err).NotTo(HaveOccurred())
			}
			add("/browser", "sg1", models.RawRow{"_type": "server_group", "_id": 1, "inode": true})
			add("/browser/sg1", "srv2", models.RawRow{"_type": "server", "_id": 2, "connected": true, "inode": true})
			add("/browser/sg1/srv2", "coll-database", models.RawRow{"_type": "coll-database", "inode": true})
			add("/browser/sg1/srv2/coll-database", "db5", models.RawRow{"_type": "database", "_id": 5, "connected": true, "inode": true})
			add("/browser/sg1/srv2/coll-database/db5", "constraints", models.RawRow{"_type": "constraints", "inode": true})
		})

		// Given a chain of identity-bearing ancestors
		// When each node is read
		// Then the url carries the _id chain in the shape of the node kind
		DescribeTable("should build the url from type and ids",
			func(path, url string) {
				// empty the node so that the read goes to the backend
				for _, c := range s.FindNode(path).Children() {
					Expect(s.RemoveNode(c.Path())).To(BeTrue())
				}
				fetcher.SetChildren(url)

				s.ReadNode(ctx, path)

				Expect(fetcher.Requests(url)).To(Equal(1))
			},
			Entry("root", "/browser", "nodes/"),
			Entry("plain node", "/browser/sg1/srv2", "server/children/1/2"),
			Entry("collection", "/browser/sg1/srv2/coll-database", "database/nodes/1/2/"),
			Entry("nested node", "/browser/sg1/srv2/coll-database/db5", "database/children/1/2/5"),
			Entry("type without id", "/browser/sg1/srv2/coll-database/db5/constraints", "constraints/children/1/2/5"),
		)
	})

	Context("concurrent loads", func() {
		// Given a backend that holds its answer
		// When many readers read the same unloaded node at once
		// Then one request is made and every child is inserted once
		It("should fetch once and not duplicate children", func() {
			// Arrange
			fetcher.SetChildren("nodes/",
				models.RawRow{"id": "sg1", "_type": "server_group"},
				models.RawRow{"id": "sg2", "_type": "server_group"},
			)
			release := fetcher.Hold()

			var wg sync.WaitGroup
			results := make([][]*tree.Node, 8)
			for i := range results {
				wg.Add(1)
				go func(i int) {
					defer GinkgoRecover()
					defer wg.Done()
					results[i] = s.ReadNode(ctx, "/browser")
				}(i)
			}
			Eventually(fetcher.Started()).Should(Receive())

			// Act
			release()
			wg.Wait()

			// Assert
			Expect(fetcher.Requests("nodes/")).To(Equal(1))
			Expect(s.Root().Children()).To(HaveLen(2))
			for _, r := range results {
				Expect(r).To(HaveLen(2))
			}
		})

		// Given a fetch in flight for a node
		// When the node is removed before the answer arrives
		// Then the late children are discarded
		It("should discard children arriving after removal", func() {
			// Arrange
			srv, err := s.AddNode("/browser", "/browser/srv1", models.RawRow{"id": "srv1", "_type": "server", "connected": true})
			Expect(err).NotTo(HaveOccurred())
			fetcher.SetChildren("server/children/srv1", models.RawRow{"id": "db1", "_type": "database"})
			release := fetcher.Hold()

			done := make(chan []*tree.Node, 1)
			go func() {
				done <- s.ReadNode(ctx, "/browser/srv1")
			}()
			Eventually(fetcher.Started()).Should(Receive())

			// Act
			Expect(s.RemoveNode("/browser/srv1")).To(BeTrue())
			release()

			// Assert
			Eventually(done).Should(Receive(BeEmpty()))
			Expect(srv.Children()).To(BeEmpty())
		})

		// Given reads running on a scheduler pool
		// When several different nodes are read at the same time
		// Then each is loaded with its own children
		It("should load through the scheduler", func() {
			// Arrange
			sched := scheduler.NewScheduler[[]models.RawRow](2)
			defer sched.Close()
			s = tree.NewStore("/browser", fetcher, tree.WithScheduler(sched), tree.WithNotifier(notifier))
			for _, id := range []string{"a", "b", "c"} {
				_, err := s.AddNode("/browser", "/browser/"+id, models.RawRow{"id": id, "_type": "server_group"})
				Expect(err).NotTo(HaveOccurred())
				fetcher.SetChildren("server_group/children/"+id, models.RawRow{"id": id + "-srv", "_type": "server"})
			}

			// Act
			var wg sync.WaitGroup
			for _, id := range []string{"a", "b", "c"} {
				wg.Add(1)
				go func(id string) {
					defer GinkgoRecover()
					defer wg.Done()
					Expect(s.ReadNode(ctx, "/browser/"+id)).To(HaveLen(1))
				}(id)
			}
			wg.Wait()

			// Assert
			Expect(s.FindNode("/browser/b/b-srv")).NotTo(BeNil())
			Expect(fetcher.TotalRequests()).To(Equal(3))
		})
	})

	Context("ordering", func() {
		BeforeEach(func() {
			fetcher.SetChildren("nodes/",
				models.RawRow{"id": "db10", "label": "db10", "inode": true},
				models.RawRow{"id": "notes", "label": "notes"},
				models.RawRow{"id": "db2", "label": "db2", "inode": true},
				models.RawRow{"id": "Alpha", "label": "Alpha", "inode": true},
			)
		})

		// Given no comparator
		// When children are read
		// Then the backend order is kept
		It("should keep backend order by default", func() {
			children := s.ReadNode(ctx, "/browser")

			Expect(ids(children)).To(Equal([]string{"db10", "notes", "db2", "Alpha"}))
		})

		// Given a natural order comparator
		// When children are read
		// Then directories come first in natural order and stored order is unchanged
		It("should sort with the natural order comparator", func() {
			// Arrange
			s = tree.NewStore("/browser", fetcher, tree.WithComparator(tree.NaturalOrder(language.English)))

			// Act
			children := s.ReadNode(ctx, "/browser")

			// Assert
			Expect(ids(children)).To(Equal([]string{"Alpha", "db2", "db10", "notes"}))
			Expect(ids(s.Root().Children())).To(Equal([]string{"db10", "notes", "db2", "Alpha"}))
		})
	})

	Context("Init", func() {
		It("should drop every node", func() {
			_, err := s.AddNode("/browser", "/browser/srv1", models.RawRow{"id": "srv1"})
			Expect(err).NotTo(HaveOccurred())

			s.Init("/browser")

			Expect(s.Root().Children()).To(BeEmpty())
			Expect(s.FindNode("/browser/srv1")).To(BeNil())
		})
	})
})

func ids(nodes []*tree.Node) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.ID())
	}
	return out
}
