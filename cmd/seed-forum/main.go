// cmd/seed-forum fills the configured store with sample threads for local
// development: top-level posts, first and second level replies, and a
// spread of likes and dislikes.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"time"

	"Delver/internal/config"
	"Delver/internal/core/posts"
	"Delver/internal/core/reactions"
	"Delver/internal/db/stores"
)

var userNames = []string{
	"sarah_jenkins", "michael_chen", "jessica_rodriguez", "david_nguyen",
	"emily_williams", "james_patel", "ashley_garcia", "robert_kim",
	"jennifer_lee", "william_martinez", "amanda_johnson", "daniel_brown",
}

var postTitles = []string{
	"Best way to handle a mimic ambush?",
	"Homebrew: the Lantern Warden subclass",
	"Our party got TPK'd by goblins, AMA",
	"Encounter balance for level 3 parties",
	"Share your favourite dungeon trap",
	"How do you run downtime between sessions?",
}

var postBodies = []string{
	"Looking for advice from people who have run this at the table.",
	"Feedback welcome, numbers are still rough.",
	"Long story, but the dice were not on our side.",
	"Curious how other DMs approach this.",
}

var replyBodies = []string{
	"Absolutely agree, we did the same last campaign.",
	"Have you tried giving them a way to retreat?",
	"This is great, stealing it for Friday.",
	"Counterpoint: let the dice decide.",
	"Our DM does something similar and it works well.",
}

var deepReplyBodies = []string{
	"Ha, fair point.",
	"That's what I was thinking too!",
	"Good call, hadn't considered that.",
}

func main() {
	envFile := flag.String("env", ".env", "optional dotenv file overlaid on the environment")
	numPosts := flag.Int("posts", 6, "number of top-level posts")
	seed := flag.Int64("seed", time.Now().UnixNano(), "random seed")
	flag.Parse()

	cfg, err := config.New(*envFile)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.Backend == config.BackendMemory {
		log.Fatal("seed-forum needs a persistent backend (dynamodb or postgres)")
	}

	ctx := context.Background()
	st, err := stores.Open(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer func() { _ = st.Close() }()

	postService := posts.NewPostService(st.Posts, nil, nil)
	reactionService := reactions.NewService(st.Posts, nil)
	rng := rand.New(rand.NewSource(*seed))

	summary, err := seedForum(ctx, rng, postService, reactionService, *numPosts)
	if err != nil {
		log.Fatalf("Seeding stopped: %v", err)
	}

	log.Println("=== Summary ===")
	log.Printf("Top-level posts: %d", summary.posts)
	log.Printf("First-level replies: %d", summary.replies)
	log.Printf("Second-level replies: %d", summary.deepReplies)
	log.Printf("Reactions: %d", summary.reactions)
}

type seedSummary struct {
	posts, replies, deepReplies, reactions int
}

func seedForum(ctx context.Context, rng *rand.Rand, postService posts.Service, reactionService reactions.Service, numPosts int) (seedSummary, error) {
	var sum seedSummary
	pick := func(list []string) string { return list[rng.Intn(len(list))] }

	topLevel := make([]*posts.Post, 0, numPosts)
	for i := 0; i < numPosts; i++ {
		p, err := postService.CreatePost(ctx, userNames[i%len(userNames)], posts.CreatePostRequest{
			Title: postTitles[i%len(postTitles)],
			Body:  pick(postBodies),
		})
		if err != nil {
			return sum, fmt.Errorf("create post: %w", err)
		}
		topLevel = append(topLevel, p)
		sum.posts++
	}

	// 60% of posts get 1-3 replies; 40% of those replies get 1-2 replies of their own
	firstLevel := make([]*posts.Post, 0)
	for i, parent := range topLevel {
		if rng.Float64() > 0.6 {
			continue
		}
		numReplies := 1 + rng.Intn(3)
		for j := 0; j < numReplies; j++ {
			author := userNames[(i*3+j+len(topLevel))%len(userNames)]
			reply, err := postService.CreateReply(ctx, author, parent.PostID, posts.CreateReplyRequest{Body: pick(replyBodies)})
			if err != nil {
				return sum, fmt.Errorf("create reply: %w", err)
			}
			firstLevel = append(firstLevel, reply)
			sum.replies++
		}
	}

	for i, parent := range firstLevel {
		if rng.Float64() > 0.4 {
			continue
		}
		numReplies := 1 + rng.Intn(2)
		for j := 0; j < numReplies; j++ {
			author := userNames[(i*2+j+len(firstLevel))%len(userNames)]
			if _, err := postService.CreateReply(ctx, author, parent.PostID, posts.CreateReplyRequest{Body: pick(deepReplyBodies)}); err != nil {
				return sum, fmt.Errorf("create deep reply: %w", err)
			}
			sum.deepReplies++
		}
	}

	for _, p := range topLevel {
		for _, user := range userNames {
			var err error
			switch r := rng.Float64(); {
			case r < 0.5:
				_, err = reactionService.Like(ctx, user, p.PostID)
			case r < 0.65:
				_, err = reactionService.Dislike(ctx, user, p.PostID)
			default:
				continue
			}
			if err != nil {
				return sum, fmt.Errorf("react: %w", err)
			}
			sum.reactions++
		}
	}

	return sum, nil
}
