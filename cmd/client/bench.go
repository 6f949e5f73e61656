package main

import (
	"fmt"
	"math/rand"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	pub "gitlab.com/dirk.krummacker/contact-console/pkg/model"
)

var benchSizes []int

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Measure the average request duration in microseconds",
	Long: `Sends the given number of POST requests, then the same number of status changes, GET
requests and views on random submissions among the ones just created.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client := newClient()
		fmt.Println()
		fmt.Println("  Elements      POST       PUT       GET      VIEW ")
		fmt.Println("---------------------------------------------------")
		request := pub.SubmitRequest{
			FullName: "Marcus Antonius",
			Email:    "marcus@example.org",
			Subject:  "Benchmark",
			Message:  "Veni, vidi, vici.",
		}
		for _, loops := range benchSizes {
			if loops < 1 {
				continue
			}
			fmt.Printf("%10d", loops)
			ids := make([]string, 0, loops)
			{
				// POST requests
				var duration time.Duration
				for i := 0; i < loops; i++ {
					var created pub.Submission
					d, err := timed(func() error {
						return client.do(http.MethodPost, "/submissions", request, &created)
					})
					if err != nil {
						return err
					}
					duration += d
					ids = append(ids, created.Id)
				}
				fmt.Printf("%10d", duration.Microseconds()/int64(loops))
			}
			statuses := []string{"new", "read", "replied"}
			calls := []func(id string) error{
				// PUT requests
				func(id string) error {
					body := pub.StatusRequest{Status: statuses[rand.Intn(len(statuses))]}
					return client.do(http.MethodPut, "/submissions/"+id+"/status", body, nil)
				},
				// GET requests
				func(id string) error {
					return client.do(http.MethodGet, "/submissions/"+id, nil, nil)
				},
				// Views
				func(id string) error {
					return client.do(http.MethodPut, "/selection/"+id, nil, nil)
				},
			}
			for _, call := range calls {
				if err := callInLoop(ids, call); err != nil {
					return err
				}
			}
			fmt.Println()
		}
		return client.do(http.MethodDelete, "/selection", nil, nil)
	},
}

func init() {
	benchCmd.Flags().IntSliceVar(&benchSizes, "sizes", []int{100, 500, 1000, 5000}, "number of requests per round")
	rootCmd.AddCommand(benchCmd)
}

// callInLoop calls f for every id in random order and prints the average duration.
func callInLoop(ids []string, f func(id string) error) error {
	shuffled := make([]string, len(ids))
	copy(shuffled, ids)
	rand.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
	var duration time.Duration
	for _, id := range shuffled {
		d, err := timed(func() error { return f(id) })
		if err != nil {
			return err
		}
		duration += d
	}
	fmt.Printf("%10d", duration.Microseconds()/int64(len(ids)))
	return nil
}

func timed(f func() error) (time.Duration, error) {
	start := time.Now()
	err := f()
	return time.Since(start), err
}
